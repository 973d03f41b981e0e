package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/scorecardlab/deadball/internal/cache"
	"github.com/scorecardlab/deadball/internal/config"
	"github.com/scorecardlab/deadball/internal/hands"
	"github.com/scorecardlab/deadball/internal/ingest/mlb"
	"github.com/scorecardlab/deadball/internal/service"
)

const (
	appName    = "gamegen"
	appVersion = "1.0.0"
)

func main() {
	log.Printf("=== %s v%s ===", appName, appVersion)

	var (
		configPath = flag.String("config", getEnv("DEADBALL_CONFIG", "config.yaml"), "Path to YAML config")
		date       = flag.String("date", time.Now().Format("2006-01-02"), "Game date (YYYY-MM-DD)")
		team       = flag.String("team", "", "Team (code or full name)")
		season     = flag.Int("season", 0, "Season year: overlays season stats on a game build, or builds a season table with --table")
		table      = flag.Bool("table", false, "Build a team-season Deadball table (CSV) instead of a game scorecard")
		pdf        = flag.Bool("pdf", false, "Also print the scorecard to PDF")
		noCache    = flag.Bool("no-cache", false, "Skip the Redis response cache")
	)

	flag.Parse()

	if *team == "" {
		log.Fatalf("Specify --team")
	}
	if *table && *season == 0 {
		log.Fatalf("--table requires --season")
	}

	if err := godotenv.Load(); err == nil {
		log.Println("✓ Loaded .env")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	var fetcher mlb.Fetcher = mlb.NewHTTPFetcher()
	if !*noCache {
		if redisCache, err := cache.NewRedisCache(cfg.Redis.URL); err == nil {
			defer redisCache.Close()
			fetcher = cache.NewCachingFetcher(redisCache, fetcher, cfg.Redis.FetchTTL, cfg.MLB.Offline)
			log.Println("✓ Response cache enabled")
		} else {
			log.Printf("⚠️  Redis unavailable, fetching uncached: %v", err)
		}
	}

	client := mlb.NewClient(cfg.MLB.BaseURL, fetcher)

	handCache, err := hands.OpenFileCache(cfg.Hands.CachePath)
	if err != nil {
		log.Fatalf("open hands cache: %v", err)
	}
	roster := hands.NewCSVRoster(cfg.Hands.RosterPattern)
	resolver := hands.NewResolver(handCache, roster, client, client)

	// One-shot build: no database, no event sinks.
	builds := service.NewBuildService(
		client, resolver, handCache,
		nil, nil,
		cfg.Render.TemplatePath, cfg.Render.OutputDir,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if *table {
		rows, outPath, err := builds.BuildSeasonTable(ctx, *team, *season)
		if err != nil {
			log.Fatalf("season table build failed: %v", err)
		}
		log.Printf("✓ Wrote %d rows to %s", len(rows), outPath)
		return
	}

	result, err := builds.BuildGame(ctx, *date, *team, service.BuildOptions{
		Season: *season,
		PDF:    *pdf,
	})
	if err != nil {
		log.Fatalf("build failed: %v", err)
	}

	log.Printf("✓ %s", result.Scoreboard)
	log.Printf("✓ Scorecard: %s", result.HTMLPath)
	if result.PDFPath != "" {
		log.Printf("✓ PDF: %s", result.PDFPath)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
