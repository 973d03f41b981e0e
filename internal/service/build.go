package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/scorecardlab/deadball/internal/convert"
	"github.com/scorecardlab/deadball/internal/export"
	"github.com/scorecardlab/deadball/internal/hands"
	"github.com/scorecardlab/deadball/internal/ingest/mlb"
	"github.com/scorecardlab/deadball/internal/publisher"
	"github.com/scorecardlab/deadball/internal/render"
	"github.com/scorecardlab/deadball/internal/roster"
	"github.com/scorecardlab/deadball/internal/store"
	"github.com/scorecardlab/deadball/internal/store/repository"
)

// EventSink receives build lifecycle events. The websocket hub and the
// Redis stream publisher both satisfy it.
type EventSink interface {
	PublishBuildEvent(ctx context.Context, event publisher.BuildEvent) error
}

// BuildService runs the full pipeline for one game: fetch, parse,
// convert, resolve, assemble, render, persist.
type BuildService struct {
	client    *mlb.Client
	resolver  *hands.Resolver
	handCache hands.Cache

	gameRepo  *repository.GameRepository
	buildRepo *repository.BuildRepository

	sinks []EventSink

	templatePath string
	outputDir    string
}

// NewBuildService wires the pipeline. gameRepo/buildRepo may be nil for
// one-shot CLI use without a database; sinks may be empty.
func NewBuildService(
	client *mlb.Client,
	resolver *hands.Resolver,
	handCache hands.Cache,
	gameRepo *repository.GameRepository,
	buildRepo *repository.BuildRepository,
	templatePath, outputDir string,
	sinks ...EventSink,
) *BuildService {
	return &BuildService{
		client:       client,
		resolver:     resolver,
		handCache:    handCache,
		gameRepo:     gameRepo,
		buildRepo:    buildRepo,
		sinks:        sinks,
		templatePath: templatePath,
		outputDir:    outputDir,
	}
}

// BuildOptions tune one build run.
type BuildOptions struct {
	// Season, when set, overlays season-aggregate targets and traits on
	// top of the game rows and enables the roster handedness source.
	Season int

	// PDF additionally prints the filled scorecard to PDF.
	PDF bool
}

// BuildResult is everything one build produced.
type BuildResult struct {
	GamePk     int
	Scoreboard string
	Postseason bool
	Game       roster.Game
	Fields     map[string]string
	HTMLPath   string
	PDFPath    string
	BuildID    int
}

// BuildGame runs the pipeline for the game a team played on a date.
func (s *BuildService) BuildGame(ctx context.Context, date, team string, opts BuildOptions) (*BuildResult, error) {
	s.emit(ctx, publisher.BuildEvent{Date: date, Team: team, Status: store.BuildStarted})

	result, err := s.buildGame(ctx, date, team, opts)
	if err != nil {
		s.emit(ctx, publisher.BuildEvent{Date: date, Team: team, Status: store.BuildFailed, Detail: err.Error()})
		return nil, err
	}

	s.emit(ctx, publisher.BuildEvent{
		GamePk: result.GamePk,
		Date:   date,
		Team:   team,
		Status: store.BuildCompleted,
		Detail: result.Scoreboard,
	})
	return result, nil
}

func (s *BuildService) buildGame(ctx context.Context, date, team string, opts BuildOptions) (*BuildResult, error) {
	scheduled, err := s.client.FindGame(ctx, date, team)
	if err != nil {
		return nil, err
	}
	if scheduled.Postseason() {
		log.Printf("[build] game %d: %s @ %s (postseason)", scheduled.GamePk, scheduled.AwayName, scheduled.HomeName)
	} else {
		log.Printf("[build] game %d: %s @ %s", scheduled.GamePk, scheduled.AwayName, scheduled.HomeName)
	}

	boxscore, err := s.client.Boxscore(ctx, scheduled.GamePk)
	if err != nil {
		return nil, err
	}

	raw, labels, err := mlb.ParseBoxscore(boxscore)
	if err != nil {
		return nil, fmt.Errorf("parsing boxscore %d: %w", scheduled.GamePk, err)
	}

	batting, pitching := mlb.SplitRows(raw)
	rows := make([]convert.PlayerRow, 0, len(raw))
	for _, stat := range batting {
		rows = append(rows, convert.ConvertHitter(stat))
	}
	for _, stat := range pitching {
		rows = append(rows, convert.ConvertPitcher(stat))
	}

	if opts.Season > 0 {
		if err := s.overlaySeason(ctx, rows, labels, opts.Season); err != nil {
			// The game card still works without season aggregates.
			log.Printf("[build] season overlay failed: %v", err)
		}
	}

	s.resolveHands(ctx, rows, raw, opts.Season)

	game, err := roster.ResolveSides(rows,
		[]string{scheduled.AwayName, labels.AwayName},
		[]string{scheduled.HomeName, labels.HomeName})
	if err != nil {
		return nil, err
	}

	result := &BuildResult{
		GamePk:     scheduled.GamePk,
		Scoreboard: fmt.Sprintf("%s @ %s", game.AwayLabel, game.HomeLabel),
		Postseason: scheduled.Postseason(),
		Game:       game,
		Fields:     render.GameFields(game),
	}

	if err := s.renderOutputs(ctx, result, opts); err != nil {
		return nil, err
	}

	if err := s.persist(ctx, scheduled, date, opts.Season, result); err != nil {
		return nil, err
	}

	if s.handCache != nil {
		if err := s.handCache.Persist(); err != nil {
			log.Printf("[build] persisting hands cache failed: %v", err)
		}
	}

	log.Printf("[build] ✓ completed %s", result.Scoreboard)
	return result, nil
}

// BuildSeasonTable converts one team's season aggregates into a full
// Deadball table and writes it as CSV. Returns the converted rows.
func (s *BuildService) BuildSeasonTable(ctx context.Context, team string, season int) ([]convert.PlayerRow, string, error) {
	raw, err := s.client.TeamSeasonStats(ctx, team, season)
	if err != nil {
		return nil, "", err
	}

	batting, pitching := mlb.SplitRows(raw)
	rows := convert.BuildSeason(batting, pitching)
	s.resolveHands(ctx, rows, raw, season)

	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return nil, "", fmt.Errorf("creating output dir: %w", err)
	}
	outPath := filepath.Join(s.outputDir, fmt.Sprintf("deadball_%s_%d.csv", mlb.TeamCode(team), season))
	f, err := os.Create(outPath)
	if err != nil {
		return nil, "", fmt.Errorf("creating %s: %w", outPath, err)
	}
	defer f.Close()

	if err := export.WriteCSV(f, rows); err != nil {
		return nil, "", err
	}

	if s.handCache != nil {
		if err := s.handCache.Persist(); err != nil {
			log.Printf("[build] persisting hands cache failed: %v", err)
		}
	}

	log.Printf("[build] ✓ season table %s %d: %d rows -> %s", team, season, len(rows), outPath)
	return rows, outPath, nil
}

// overlaySeason replaces game-derived targets with season aggregates
// for every player the season table knows.
func (s *BuildService) overlaySeason(ctx context.Context, rows []convert.PlayerRow, labels mlb.BoxscoreTeams, season int) error {
	var seasonRows []convert.PlayerRow
	for _, team := range []string{labels.AwayName, labels.HomeName} {
		raw, err := s.client.TeamSeasonStats(ctx, team, season)
		if err != nil {
			return err
		}
		batting, pitching := mlb.SplitRows(raw)
		seasonRows = append(seasonRows, convert.BuildSeason(batting, pitching)...)
	}
	table := convert.NewTable(seasonRows)

	for i := range rows {
		row := &rows[i]
		switch row.Type {
		case convert.Hitter:
			if agg, ok := table.Hitter(row.Name); ok {
				row.BT = agg.BT
				row.OBT = agg.OBT
				row.Traits = agg.Traits
			}
		case convert.Pitcher:
			if agg, ok := table.Pitcher(row.Name); ok {
				row.PD = agg.PD
				row.ERA = agg.ERA
				row.Traits = agg.Traits
			}
		}
	}
	return nil
}

func (s *BuildService) resolveHands(ctx context.Context, rows []convert.PlayerRow, raw []convert.RawPlayerStat, season int) {
	if s.resolver == nil {
		return
	}
	ids := make(map[string]int, len(raw))
	for _, stat := range raw {
		if stat.ExternalID != 0 {
			ids[stat.Name] = stat.ExternalID
		}
	}
	s.resolver.Apply(ctx, rows, func(name string) int { return ids[name] }, season)
}

func (s *BuildService) renderOutputs(ctx context.Context, result *BuildResult, opts BuildOptions) error {
	template, err := os.ReadFile(s.templatePath)
	if err != nil {
		return fmt.Errorf("reading scorecard template: %w", err)
	}

	html, err := render.RenderHTML(string(template), result.Game)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	result.HTMLPath = s.ScorecardPath(result.GamePk)
	if err := os.WriteFile(result.HTMLPath, []byte(html), 0o644); err != nil {
		return fmt.Errorf("writing scorecard: %w", err)
	}

	if opts.PDF {
		result.PDFPath = filepath.Join(s.outputDir, fmt.Sprintf("scorecard_%d.pdf", result.GamePk))
		if err := render.PrintPDF(ctx, html, result.PDFPath); err != nil {
			return err
		}
	}
	return nil
}

// ScorecardPath is where a game's rendered HTML lands.
func (s *BuildService) ScorecardPath(gamePk int) string {
	return filepath.Join(s.outputDir, fmt.Sprintf("scorecard_%d.html", gamePk))
}

func (s *BuildService) persist(ctx context.Context, scheduled mlb.ScheduledGame, date string, season int, result *BuildResult) error {
	if s.gameRepo == nil || s.buildRepo == nil {
		return nil
	}

	gameDate, err := time.Parse("2006-01-02", date)
	if err != nil {
		gameDate = time.Now()
	}

	stored, err := s.gameRepo.Upsert(ctx, &store.Game{
		GamePk:   int64(scheduled.GamePk),
		GameDate: gameDate,
		AwayTeam: result.Game.AwayLabel,
		HomeTeam: result.Game.HomeLabel,
		Status:   scheduled.Status,
	})
	if err != nil {
		return err
	}

	build, err := s.buildRepo.Create(ctx, &store.Build{
		GameID:     stored.GameID,
		Season:     season,
		Status:     store.BuildCompleted,
		Scoreboard: result.Scoreboard,
	})
	if err != nil {
		return err
	}
	result.BuildID = build.BuildID

	var rows []store.PlayerRow
	rows = append(rows, sideRows(result.Game.Away, "away")...)
	rows = append(rows, sideRows(result.Game.Home, "home")...)
	return s.buildRepo.ReplaceRows(ctx, build.BuildID, rows)
}

func sideRows(lineup roster.Lineup, side string) []store.PlayerRow {
	var out []store.PlayerRow
	for i, h := range lineup.Starters {
		out = append(out, storeRow(h, side, "lineup", i))
	}
	for i, h := range lineup.Bench {
		out = append(out, storeRow(h, side, "bench", i))
	}
	for i, p := range lineup.Pitchers() {
		out = append(out, storeRow(p, side, "pitcher", i))
	}
	return out
}

func storeRow(row convert.PlayerRow, side, section string, idx int) store.PlayerRow {
	stored := store.PlayerRow{
		Side:       side,
		Section:    section,
		RowIdx:     idx,
		PlayerType: string(row.Type),
		Name:       row.Name,
		Pos:        row.Pos,
		Hand:       row.Hand,
		Traits:     strings.Join(row.Traits, " "),
		PD:         row.PD,
		IP:         row.IP,
	}
	if row.BatOrder != nil {
		stored.BatOrder = row.BatOrder.String()
	}
	if row.BT != nil {
		stored.BT.Valid = true
		stored.BT.Int32 = int32(*row.BT)
	}
	if row.OBT != nil {
		stored.OBT.Valid = true
		stored.OBT.Int32 = int32(*row.OBT)
	}
	if row.ERA != nil {
		stored.ERA.Valid = true
		stored.ERA.Float64 = *row.ERA
	}
	return stored
}

func (s *BuildService) emit(ctx context.Context, event publisher.BuildEvent) {
	for _, sink := range s.sinks {
		if err := sink.PublishBuildEvent(ctx, event); err != nil {
			log.Printf("[build] publishing event failed: %v", err)
		}
	}
}
