// Package server provides the HTTP REST API over the card store and the
// capture pipeline.
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

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/cardpulse/internal/extraction"
	"github.com/jonathan/cardpulse/internal/llm"
	"github.com/jonathan/cardpulse/internal/pipeline"
	"github.com/jonathan/cardpulse/internal/store"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	store      *store.Store
	scanner    *pipeline.Scanner
	llmClient  llm.Client
	validate   *validator.Validate
}

// Config holds server configuration
type Config struct {
	Port         int
	DataPath     string
	APIKey       string
	ScanTimeout  time.Duration
	SuccessReset time.Duration
}

// New creates a new server instance
func New(ctx context.Context, cfg Config) (*Server, error) {
	st, err := store.Open(cfg.DataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	outcome, err := st.Load(ctx)
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("failed to load collection: %w", err)
	}
	if outcome == store.RecoveredCorrupt {
		log.Printf("Recovered from a corrupt snapshot; starting with an empty collection")
	}

	var client llm.Client
	if cfg.APIKey != "" {
		client, err = llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
	}

	gateway := extraction.NewGateway(client, cfg.ScanTimeout)

	s := &Server{
		store:     st,
		scanner:   pipeline.NewScanner(gateway, st, cfg.SuccessReset),
		llmClient: client,
		validate:  validator.New(),
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(s.routes())),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // Long timeout for extraction calls
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the request router.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /cards", s.handleScanCard)
	mux.HandleFunc("POST /cards/stream", s.handleScanCardStream)
	mux.HandleFunc("GET /cards", s.handleListCards)
	mux.HandleFunc("GET /cards/{id}", s.handleGetCard)
	mux.HandleFunc("DELETE /cards/{id}", s.handleDeleteCard)
	mux.HandleFunc("GET /cards/{id}/vcard", s.handleExportCard)
	mux.HandleFunc("GET /scan/status", s.handleScanStatus)
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
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

	if s.llmClient != nil {
		_ = s.llmClient.Close()
	}
	_ = s.store.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
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

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
