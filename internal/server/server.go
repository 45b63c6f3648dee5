// Package server exposes the layout pipeline over HTTP.
//
// Routes:
//
//	POST /v1/layout              lay out the graph in the body and store it
//	GET  /v1/layouts             list stored layout IDs, newest first
//	GET  /v1/layouts/{id}        fetch a stored layout
//	GET  /v1/layouts/{id}/svg    render a stored layout
//	GET  /healthz                liveness
//	GET  /metrics                prometheus metrics
//
// Errors are JSON objects {"code": ..., "message": ...} with the status
// derived from the error code.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/strata/pkg/pipeline"
	"github.com/matzehuels/strata/pkg/store"
)

const (
	// DefaultListLimit caps GET /v1/layouts when no limit is given.
	DefaultListLimit = 100

	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// Config configures a Server.
type Config struct {
	// Addr is the listen address for ListenAndServe.
	Addr string

	// MaxBodyBytes limits request bodies. Zero means
	// pipeline.DefaultMaxBodyBytes.
	MaxBodyBytes int64

	// Options are the defaults for every request. Query parameters
	// override the engine configuration per request.
	Options pipeline.Options

	// Metrics, when set, is served at /metrics.
	Metrics *Metrics

	Logger *log.Logger
}

// Server is the HTTP API.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	cfg    Config
	logger *log.Logger
	router chi.Router
}

// New creates a server backed by runner and st.
func New(runner *pipeline.Runner, st store.Store, cfg Config) *Server {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = pipeline.DefaultMaxBodyBytes
	}
	if cfg.Addr == "" {
		cfg.Addr = pipeline.DefaultAddr
	}
	cfg.Options.SetDefaults()
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		runner: runner,
		store:  st,
		cfg:    cfg,
		logger: logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Use(s.recoverPanics)
	r.Use(limitBody(s.cfg.MaxBodyBytes))

	r.Get("/healthz", s.handleHealth)
	if s.cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.cfg.Metrics.Handler())
	}

	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Get("/layouts", s.handleList)
		r.Get("/layouts/{id}", s.handleGet)
		r.Get("/layouts/{id}/svg", s.handleSVG)
	})
	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}
