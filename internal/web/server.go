// Package web provides the operational HTTP surface for the warehouse:
// triggering extract loads and pipeline runs, and inspecting the latest
// run result and quality report.
package web

import (
	"context"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jlowell/salesdw/internal/config"
	"github.com/jlowell/salesdw/internal/loader"
	"github.com/jlowell/salesdw/internal/pipeline"
)

// Server is the HTTP server for warehouse operations.
type Server struct {
	pipeline *pipeline.Pipeline
	loader   *loader.Loader
	cfg      *config.Config
	router   *chi.Mux
	server   *http.Server

	// runMu serializes pipeline runs and extract loads; concurrent
	// triggers get 409 instead of queueing.
	runMu sync.Mutex

	// latestMu guards latest, the result of the most recent run.
	latestMu sync.RWMutex
	latest   *pipeline.Result
}

// NewServer creates a new Server instance.
func NewServer(p *pipeline.Pipeline, l *loader.Loader, cfg *config.Config) *Server {
	s := &Server{
		pipeline: p,
		loader:   l,
		cfg:      cfg,
		router:   chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))

	// Runs execute inside the request, so the timeout comes from config
	// rather than a short hardcoded value.
	s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))

	s.router.Use(securityHeaders)
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		// Ingest the six extracts into the raw layer
		r.Post("/load", s.handleLoad)

		// Trigger a full pipeline run
		r.Post("/runs", s.handleRun)

		// Inspect the most recent run
		r.Get("/runs/latest", s.handleLatestRun)

		// Quality report of the most recent run
		r.Get("/quality", s.handleQuality)
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// setLatest records the result of the most recent pipeline run.
func (s *Server) setLatest(res *pipeline.Result) {
	s.latestMu.Lock()
	s.latest = res
	s.latestMu.Unlock()
}

// latestResult returns the most recent run result, or nil before the
// first run.
func (s *Server) latestResult() *pipeline.Result {
	s.latestMu.RLock()
	defer s.latestMu.RUnlock()
	return s.latest
}

// securityHeaders adds security headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Prevent MIME type sniffing
		w.Header().Set("X-Content-Type-Options", "nosniff")

		// Prevent clickjacking
		w.Header().Set("X-Frame-Options", "DENY")

		// Control referrer information
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next.ServeHTTP(w, r)
	})
}
