package rest

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/scorecardlab/deadball/internal/service"
	"github.com/scorecardlab/deadball/internal/store"
)

// Server represents the REST API server
type Server struct {
	addr    string
	server  *http.Server
	handler *Handler
}

// NewServer creates a new REST API server
func NewServer(addr string, db *store.Database, builds *service.BuildService) *Server {
	handler := NewHandler(db, builds)

	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	// Builds
	api.HandleFunc("/games/{date}/{team}/convert", handler.ConvertGame).Methods("POST")
	api.HandleFunc("/seasons/{season}/{team}/convert", handler.ConvertSeason).Methods("POST")

	// Stored games and rows
	api.HandleFunc("/games", handler.GetGamesByDate).Methods("GET")
	api.HandleFunc("/games/{gamePk}", handler.GetGame).Methods("GET")
	api.HandleFunc("/games/{gamePk}/rows", handler.GetGameRows).Methods("GET")
	api.HandleFunc("/games/{gamePk}/fields", handler.GetGameFields).Methods("GET")
	api.HandleFunc("/games/{gamePk}/scorecard", handler.GetScorecard).Methods("GET")

	return &Server{
		addr:    addr,
		handler: handler,
		server: &http.Server{
			Addr:    addr,
			Handler: router,
		},
	}
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
