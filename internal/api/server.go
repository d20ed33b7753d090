// Package api implements the HTTP interface: one-shot optimization plus
// persistent show management.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/sketchbomb/runorder/internal/config"
	"github.com/sketchbomb/runorder/pkg/pipeline"
	"github.com/sketchbomb/runorder/pkg/store"
)

// Server wires the optimization pipeline and the show store into an HTTP
// handler.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	solver config.SolverConfig
	logger *log.Logger
}

// NewServer creates a server. A nil store disables the /shows endpoints'
// persistence and falls back to an in-memory store.
func NewServer(runner *pipeline.Runner, st store.Store, solver config.SolverConfig, logger *log.Logger) *Server {
	if st == nil {
		st = store.NewMemoryStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		runner: runner,
		store:  st,
		solver: solver,
		logger: logger,
	}
}

// Router builds the route table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/optimize", s.handleOptimize)

	r.Route("/shows", func(r chi.Router) {
		r.Get("/", s.handleListShows)
		r.Post("/", s.handleCreateShow)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetShow)
			r.Delete("/", s.handleDeleteShow)
			r.Post("/optimize", s.handleOptimizeShow)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// requestID attaches a fresh UUID to each request so log lines from one
// request can be correlated.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

type ctxKey string

const requestIDKey ctxKey = "request_id"

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		id, _ := r.Context().Value(requestIDKey).(string)
		s.logger.Info("request",
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start))
	})
}
