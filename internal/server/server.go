// Package server provides the HTTP REST API for the calendar agent.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/calendar-agent/internal/artifact"
	"github.com/jonathan/calendar-agent/internal/cache"
	"github.com/jonathan/calendar-agent/internal/db"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	db         *db.DB
	artifacts  *artifact.Store
	cacheStore *cache.Store

	serpAPIKey   string
	anthropicKey string
	databaseURL  string

	// Alternate backend endpoints, set in tests. Empty means production.
	searchBaseURL    string
	anthropicBaseURL string
}

// Config holds server configuration
type Config struct {
	Port        int
	CacheDir    string
	OutputDir   string
	DatabaseURL string

	// API keys are passed through unvalidated; a missing key surfaces as a
	// run error on first use.
	SerpAPIKey   string
	AnthropicKey string

	SearchBaseURL    string
	AnthropicBaseURL string
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	s := &Server{
		artifacts:        artifact.NewStore(cfg.OutputDir),
		cacheStore:       cache.NewStore(cfg.CacheDir),
		serpAPIKey:       cfg.SerpAPIKey,
		anthropicKey:     cfg.AnthropicKey,
		databaseURL:      cfg.DatabaseURL,
		searchBaseURL:    cfg.SearchBaseURL,
		anthropicBaseURL: cfg.AnthropicBaseURL,
	}

	// Run history is optional; the server works without a database.
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Printf("Warning: failed to connect to database, run history disabled: %v", err)
		} else {
			if err := database.Migrate(context.Background()); err != nil {
				log.Printf("Warning: failed to migrate database: %v", err)
			}
			s.db = database
		}
	}

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("POST /calendar", s.handleGenerate)
	mux.HandleFunc("POST /calendar/stream", s.handleGenerateStream)
	mux.HandleFunc("GET /calendars", s.handleListCalendars)
	mux.HandleFunc("GET /calendars/{name}", s.handleDownloadCalendar)
	mux.HandleFunc("GET /runs", s.handleListRuns)
	mux.HandleFunc("GET /runs/{id}", s.handleGetRun)
	mux.HandleFunc("GET /health", s.handleHealth)

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for generation runs
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler exposes the configured router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.db != nil {
		s.db.Close()
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
