// Package server exposes a built graph over a read-only JSON HTTP API.
//
// # Endpoints
//
//	GET /healthz                 liveness check
//	GET /graph                   counts and flags
//	GET /vertices/{id}           degrees of one vertex
//	GET /vertices/{id}/out       outgoing neighbors (?offset=&limit=)
//	GET /vertices/{id}/in        incoming neighbors (needs in-edges)
//	GET /edges/{offset}          endpoints of one stored edge
//	GET /rank                    top vertices by PageRank (?k=, default 10)
//
// A malformed id or query parameter is 400, an id outside the graph is 404.
// Errors are returned as {"error": "...", "code": "..."}.
//
// The graph is never mutated after construction, so all requests read the
// shared container concurrently without locking.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/csrstore/pkg/pipeline"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = "127.0.0.1:8080"

// shutdownTimeout bounds how long in-flight requests may finish after the
// context is canceled.
const shutdownTimeout = 10 * time.Second

// Server serves one loaded graph.
type Server struct {
	res    *pipeline.Result
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New creates a server for res. The runner backs /rank so rankings are
// cached like any other artifact; a nil runner uses an uncached one.
func New(res *pipeline.Result, runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	s := &Server{res: res, runner: runner, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/graph", s.handleGraph)
	r.Get("/rank", s.handleRank)
	r.Route("/vertices/{id}", func(r chi.Router) {
		r.Get("/", s.handleVertex)
		r.Get("/out", s.handleOut)
		r.Get("/in", s.handleIn)
	})
	r.Get("/edges/{offset}", s.handleEdge)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "no such endpoint: "+r.URL.Path)
	})
	return r
}

// ListenAndServe serves on addr until ctx is canceled, then drains
// in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("serving graph", "addr", addr,
		"vertices", s.res.Graph.V(), "edges", s.res.Graph.E())

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
