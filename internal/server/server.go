// Package server provides the local HTTP surface for the PoseCheck
// analyzer.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/langsard/pose/internal/app"
	"github.com/langsard/pose/internal/server/api"
	"github.com/langsard/pose/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	App       *app.App

	// Defaults fill settings keys that were never saved.
	Defaults store.Settings

	// OnModelActivate is called after a registry model is marked active.
	OnModelActivate func(*store.Model) error
}

// Server represents the HTTP server for the PoseCheck application.
type Server struct {
	config   Config
	mux      *http.ServeMux
	progress *ProgressHub
	start    time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	// Register the analysis and progress endpoints if App is configured
	if s.config.App != nil {
		s.mux.Handle("/api/analyze", api.NewAnalyzeHandler(s.config.App))

		s.progress = NewProgressHub()
		s.config.App.OnProgress(s.progress.Broadcast)
		s.mux.Handle("/api/progress", s.progress)
	}

	// Register settings and model registry handlers if Store is configured
	if s.config.Store != nil {
		s.mux.Handle("/api/settings", api.NewSettingsHandler(s.config.Store, s.config.Defaults))

		modelsHandler := api.NewModelsHandler(s.config.Store, s.config.OnModelActivate)
		s.mux.Handle("/api/models", modelsHandler)
		s.mux.Handle("/api/models/", modelsHandler)
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}
	if s.config.App != nil {
		if d := s.config.App.Detector(); d != nil {
			response["detector"] = string(d.State())
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
