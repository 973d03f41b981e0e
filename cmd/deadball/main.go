package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/scorecardlab/deadball/internal/api/rest"
	"github.com/scorecardlab/deadball/internal/api/websocket"
	"github.com/scorecardlab/deadball/internal/cache"
	"github.com/scorecardlab/deadball/internal/config"
	"github.com/scorecardlab/deadball/internal/hands"
	"github.com/scorecardlab/deadball/internal/ingest/mlb"
	"github.com/scorecardlab/deadball/internal/publisher"
	"github.com/scorecardlab/deadball/internal/service"
	"github.com/scorecardlab/deadball/internal/store"
	"github.com/scorecardlab/deadball/internal/store/repository"
)

const (
	serviceName    = "deadball"
	serviceVersion = "1.0.0"
)

func main() {
	log.Printf("Starting %s v%s - Deadball Scorecard Service", serviceName, serviceVersion)

	configPath := flag.String("config", getEnv("DEADBALL_CONFIG", "config.yaml"), "Path to YAML config")
	wsPort := flag.String("ws-port", getEnv("WS_PORT", "8081"), "WebSocket server port")
	flag.Parse()

	// .env is optional; real env vars win either way
	if err := godotenv.Load(); err == nil {
		log.Println("✓ Loaded .env")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database connection
	db, err := store.NewDatabase(cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("✓ Connected to database")

	// Run migrations
	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// Initialize Redis with retry logic
	var redisCache *cache.RedisCache
	maxRetries := 30
	retryDelay := 2 * time.Second

	log.Println("Connecting to Redis...")
	for i := 0; i < maxRetries; i++ {
		redisCache, err = cache.NewRedisCache(cfg.Redis.URL)
		if err == nil {
			break
		}

		if i < maxRetries-1 {
			log.Printf("Redis connection attempt %d/%d failed: %v (retrying in %v)", i+1, maxRetries, err, retryDelay)
			time.Sleep(retryDelay)
		} else {
			log.Fatalf("Failed to connect to Redis after %d attempts: %v", maxRetries, err)
		}
	}
	defer redisCache.Close()

	log.Println("✓ Connected to Redis")

	streamPublisher := publisher.NewRedisStreamPublisher(redisCache.Client())

	// Handedness cache and resolver
	handCache, err := hands.OpenFileCache(cfg.Hands.CachePath)
	if err != nil {
		log.Fatalf("Failed to open hands cache: %v", err)
	}

	fetcher := cache.NewCachingFetcher(redisCache, mlb.NewHTTPFetcher(), cfg.Redis.FetchTTL, cfg.MLB.Offline)
	client := mlb.NewClient(cfg.MLB.BaseURL, fetcher)
	roster := hands.NewCSVRoster(cfg.Hands.RosterPattern)
	resolver := hands.NewResolver(handCache, roster, client, client)

	// WebSocket server (hub doubles as a build event sink)
	wsServer := websocket.NewServer()

	buildService := service.NewBuildService(
		client, resolver, handCache,
		repository.NewGameRepository(db), repository.NewBuildRepository(db),
		cfg.Render.TemplatePath, cfg.Render.OutputDir,
		streamPublisher, wsServer.Hub(),
	)

	// REST API server
	restServer := rest.NewServer(cfg.Addr(), db, buildService)
	go func() {
		log.Printf("Starting REST API server on %s", cfg.Addr())
		if err := restServer.Start(); err != nil {
			log.Printf("REST server error: %v", err)
		}
	}()

	go func() {
		log.Printf("Starting WebSocket server on port %s", *wsPort)
		if err := wsServer.Start(*wsPort); err != nil {
			log.Printf("WebSocket server error: %v", err)
		}
	}()

	log.Printf("✓ %s v%s started successfully", serviceName, serviceVersion)
	log.Printf("  REST API: http://%s", cfg.Addr())
	log.Printf("  WebSocket: ws://0.0.0.0:%s/ws/builds", *wsPort)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("REST API server shutdown error: %v", err)
	}
	if err := wsServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("WebSocket server shutdown error: %v", err)
	}

	if err := handCache.Persist(); err != nil {
		log.Printf("Hands cache persist error: %v", err)
	}

	log.Println("Deadball stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
