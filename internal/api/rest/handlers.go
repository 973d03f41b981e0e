package rest

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/scorecardlab/deadball/internal/service"
	"github.com/scorecardlab/deadball/internal/store"
	"github.com/scorecardlab/deadball/internal/store/repository"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	db        *store.Database
	builds    *service.BuildService
	gameRepo  *repository.GameRepository
	buildRepo *repository.BuildRepository
}

// NewHandler creates a new handler
func NewHandler(db *store.Database, builds *service.BuildService) *Handler {
	return &Handler{
		db:        db,
		builds:    builds,
		gameRepo:  repository.NewGameRepository(db),
		buildRepo: repository.NewBuildRepository(db),
	}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "deadball",
		"version": "1.0.0",
	})
}

// ConvertGame runs a scorecard build for the game a team played on a
// date. Query params: season (overlay season stats), pdf.
func (h *Handler) ConvertGame(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date := vars["date"]
	team := vars["team"]

	if _, err := time.Parse("2006-01-02", date); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	opts := service.BuildOptions{
		PDF: r.URL.Query().Get("pdf") == "true",
	}
	if seasonStr := r.URL.Query().Get("season"); seasonStr != "" {
		season, err := strconv.Atoi(seasonStr)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid season", err)
			return
		}
		opts.Season = season
	}

	result, err := h.builds.BuildGame(r.Context(), date, team, opts)
	if err != nil {
		respondError(w, http.StatusBadGateway, "Build failed", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"game_pk":    result.GamePk,
		"scoreboard": result.Scoreboard,
		"postseason": result.Postseason,
		"build_id":   result.BuildID,
		"html_path":  result.HTMLPath,
		"pdf_path":   result.PDFPath,
		"fields":     result.Fields,
	})
}

// ConvertSeason builds one team's season Deadball table and exports it
// as CSV.
func (h *Handler) ConvertSeason(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	team := vars["team"]

	season, err := strconv.Atoi(vars["season"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid season", err)
		return
	}

	rows, csvPath, err := h.builds.BuildSeasonTable(r.Context(), team, season)
	if err != nil {
		respondError(w, http.StatusBadGateway, "Build failed", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"team":     team,
		"season":   season,
		"rows":     len(rows),
		"csv_path": csvPath,
	})
}

// GetGamesByDate returns stored games for a date
func (h *Handler) GetGamesByDate(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		dateStr = time.Now().Format("2006-01-02")
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	games, err := h.gameRepo.GetByDate(r.Context(), date)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch games", err)
		return
	}

	respondJSON(w, http.StatusOK, games)
}

// GetGame returns one stored game by its feed id
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	gamePk, err := strconv.ParseInt(mux.Vars(r)["gamePk"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid game id", err)
		return
	}

	game, err := h.gameRepo.GetByGamePk(r.Context(), gamePk)
	if err != nil {
		respondError(w, http.StatusNotFound, "Game not found", err)
		return
	}

	respondJSON(w, http.StatusOK, game)
}

// GetGameRows returns the latest build's generated rows for a game
func (h *Handler) GetGameRows(w http.ResponseWriter, r *http.Request) {
	gamePk, err := strconv.ParseInt(mux.Vars(r)["gamePk"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid game id", err)
		return
	}

	game, err := h.gameRepo.GetByGamePk(r.Context(), gamePk)
	if err != nil {
		respondError(w, http.StatusNotFound, "Game not found", err)
		return
	}

	build, err := h.buildRepo.LatestForGame(r.Context(), game.GameID)
	if err != nil {
		respondError(w, http.StatusNotFound, "No builds for game", err)
		return
	}

	rows, err := h.buildRepo.RowsForBuild(r.Context(), build.BuildID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch rows", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"build": build,
		"rows":  rows,
	})
}

// GetGameFields returns the scorecard field map for a game's latest
// build, rebuilt from the stored rows
func (h *Handler) GetGameFields(w http.ResponseWriter, r *http.Request) {
	gamePk, err := strconv.ParseInt(mux.Vars(r)["gamePk"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid game id", err)
		return
	}

	game, err := h.gameRepo.GetByGamePk(r.Context(), gamePk)
	if err != nil {
		respondError(w, http.StatusNotFound, "Game not found", err)
		return
	}

	build, err := h.buildRepo.LatestForGame(r.Context(), game.GameID)
	if err != nil {
		respondError(w, http.StatusNotFound, "No builds for game", err)
		return
	}

	rows, err := h.buildRepo.RowsForBuild(r.Context(), build.BuildID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch rows", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"game_pk": gamePk,
		"fields":  service.FieldsFromStored(game, rows),
	})
}

// GetScorecard serves the rendered scorecard HTML for a game
func (h *Handler) GetScorecard(w http.ResponseWriter, r *http.Request) {
	gamePk, err := strconv.ParseInt(mux.Vars(r)["gamePk"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid game id", err)
		return
	}

	path := h.builds.ScorecardPath(int(gamePk))
	content, err := os.ReadFile(path)
	if err != nil {
		respondError(w, http.StatusNotFound, "Scorecard not rendered", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(content)
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
