// Package server exposes group analyses over HTTP.
//
// Each analysis kind has a POST endpoint taking a JSON [pipeline.Options]
// body. Finished analyses are saved as reports and returned to the caller:
//
//	POST /v1/cosets
//	POST /v1/subgroups
//	POST /v1/invariants
//	POST /v1/stabilizer
//	GET  /v1/reports
//	GET  /v1/reports/{id}
//	GET  /healthz
//	GET  /metrics
//
// Errors are returned as {"error": {"code": ..., "message": ...}} with a
// status derived from the error code.
package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/fpgroups/pkg/pipeline"
	"github.com/matzehuels/fpgroups/pkg/store"
)

const (
	// DefaultRequestTimeout bounds a single analysis request.
	DefaultRequestTimeout = 2 * time.Minute

	// maxBodyBytes bounds request bodies.
	maxBodyBytes = 1 << 20

	shutdownTimeout = 10 * time.Second
)

// Config configures a Server.
type Config struct {
	Runner *pipeline.Runner
	Store  store.Store

	// Metrics is served on /metrics when set.
	Metrics http.Handler

	Logger         *log.Logger
	RequestTimeout time.Duration
}

// Server handles analysis requests.
type Server struct {
	runner  *pipeline.Runner
	store   store.Store
	metrics http.Handler
	logger  *log.Logger
	timeout time.Duration
	router  chi.Router
}

// New creates a server. A nil store keeps reports in memory and a nil runner
// runs analyses without a cache.
func New(cfg Config) *Server {
	s := &Server{
		runner:  cfg.Runner,
		store:   cfg.Store,
		metrics: cfg.Metrics,
		logger:  cfg.Logger,
		timeout: cfg.RequestTimeout,
	}
	if s.logger == nil {
		s.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if s.runner == nil {
		s.runner = pipeline.NewRunner(nil, nil, s.logger)
	}
	if s.store == nil {
		s.store = store.NewMemoryStore()
	}
	if s.timeout <= 0 {
		s.timeout = DefaultRequestTimeout
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)
	r.Use(cors)

	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Route("/v1", func(r chi.Router) {
		for _, kind := range []string{
			pipeline.KindCosets,
			pipeline.KindSubgroups,
			pipeline.KindInvariants,
			pipeline.KindStabilizer,
		} {
			r.Post("/"+kind, s.handleAnalysis(kind))
		}
		r.Get("/reports", s.handleListReports)
		r.Get("/reports/{id}", s.handleGetReport)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, notFoundRoute(r))
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully and closes the runner and the store.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		s.close()
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.close()
	return err
}

func (s *Server) close() {
	if err := s.runner.Close(); err != nil {
		s.logger.Warn("closing cache", "error", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.store.Close(ctx); err != nil {
		s.logger.Warn("closing store", "error", err)
	}
}
