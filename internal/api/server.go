package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"dashboard/internal/dashboard"
	"dashboard/internal/models"
	"dashboard/internal/storage"

	"github.com/gorilla/mux"
)

// Looker resolves lookup queries
type Looker interface {
	Lookup(ctx context.Context, query string) (models.AccountRecord, error)
}

// Anchorer submits document anchor drafts
type Anchorer interface {
	Anchor(ctx context.Context, req models.AnchorRequest) (models.AnchorResponse, error)
}

// Server represents the HTTP API server
// Provides endpoints for Prometheus metrics, health checks and the dashboard state
type Server struct {
	httpServer *http.Server
	router     *mux.Router
	dash       *dashboard.Dashboard
	looker     Looker
	anchorer   Anchorer
	repository storage.Repository
	port       int
}

// NewServer creates a new API server instance.
// anchorer may be nil when no anchor account is configured.
func NewServer(port int, dash *dashboard.Dashboard, looker Looker, anchorer Anchorer, repository storage.Repository) *Server {
	router := mux.NewRouter()

	s := &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		router:     router,
		dash:       dash,
		looker:     looker,
		anchorer:   anchorer,
		repository: repository,
		port:       port,
	}

	// Register all HTTP routes
	s.registerRoutes()

	return s
}

// registerRoutes sets up all HTTP routes
func (s *Server) registerRoutes() {
	// Core endpoints
	s.router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", s.handleMetrics()).Methods(http.MethodGet)

	// Dashboard state
	d := s.router.PathPrefix("/dashboard").Subrouter()
	d.HandleFunc("", s.handleSnapshot).Methods(http.MethodGet)
	d.HandleFunc("/ledgers", s.handleLedgers).Methods(http.MethodGet)
	d.HandleFunc("/log", s.handleLog).Methods(http.MethodGet)

	// User intents
	d.HandleFunc("/lookup", s.handleLookup).Methods(http.MethodPost)
	d.HandleFunc("/anchor", s.handleAnchor).Methods(http.MethodPost)
	d.HandleFunc("/consent", s.handleGetConsent).Methods(http.MethodGet)
	d.HandleFunc("/consent", s.handlePutConsent).Methods(http.MethodPut)

	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.sendError(w, "Endpoint not found", http.StatusNotFound)
	})
	s.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
	})
}

// Handler returns the routed handler, used by tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server in a goroutine
// Returns immediately after starting the server
func (s *Server) Start() error {
	go func() {
		slog.Info("API server starting",
			"port", s.port,
			"endpoints", []string{"/", "/health", "/metrics", "/dashboard"},
		)

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("API server error", "error", err)
		}
	}()

	return nil
}

// Shutdown gracefully shuts down the HTTP server
// Waits for active connections to close or context to timeout
func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("API server shutting down...")
	return s.httpServer.Shutdown(ctx)
}
