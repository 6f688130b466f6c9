// Package server exposes the slug engine over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/slug/internal/config"
	"github.com/dmitrymomot/slug/pkg/health"
	"github.com/dmitrymomot/slug/pkg/logger"
	"github.com/dmitrymomot/slug/pkg/slug"
)

const maxBodyBytes = 1 << 20

var (
	errBadRequest  = errors.New("bad request")
	errTablesEmpty = errors.New("substitution tables are empty")
)

// Server serves slug requests backed by a single store.
type Server struct {
	store   *slug.Store
	logger  *slog.Logger
	cfg     config.HTTPConfig
	workers int
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and lifecycle logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithWorkers bounds how many texts of a batch are slugged concurrently.
func WithWorkers(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.workers = n
		}
	}
}

// New creates a server. The store is shared by all requests.
func New(store *slug.Store, cfg config.HTTPConfig, opts ...Option) *Server {
	s := &Server{
		store:   store,
		cfg:     cfg,
		logger:  logger.NewNope(),
		workers: 4,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cfg.MaxBatch < 1 {
		s.cfg.MaxBatch = 1000
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", health.LivenessHandler())
	r.Get("/readyz", health.ReadinessHandler(health.Checks{
		"tables": s.checkTables,
	}, health.WithLogger(s.logger)))
	r.Route("/v1", func(r chi.Router) {
		r.Get("/slug", s.handleSlug)
		r.Post("/slug", s.handleBatch)
	})
	return r
}

// checkTables reports the store unready when its tables are empty or its
// default mode has no preset.
func (s *Server) checkTables(context.Context) error {
	if len(s.store.CharMap()) == 0 {
		return errTablesEmpty
	}
	_, err := s.store.Resolve()
	return err
}

func (s *Server) handleSlug(w http.ResponseWriter, r *http.Request) {
	p, err := paramsFromQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := p.options()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out, err := s.store.Make(p.prepare(r.URL.Query().Get("text")), opts...)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, slugResponse{Slug: out})
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	if len(req.Texts) > s.cfg.MaxBatch {
		s.writeError(w, r, fmt.Errorf("%w: at most %d texts per request", errBadRequest, s.cfg.MaxBatch))
		return
	}

	opts, err := req.options()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	// Resolve once up front so a bad mode fails the request, not each text.
	if _, err := s.store.Resolve(opts...); err != nil {
		s.writeError(w, r, err)
		return
	}

	slugs := make([]string, len(req.Texts))
	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(s.workers)
	for i, text := range req.Texts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := s.store.Make(req.prepare(text), opts...)
			if err != nil {
				return err
			}
			slugs[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, batchResponse{Slugs: slugs})
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errBadRequest), errors.Is(err, slug.ErrUnknownMode):
		status = http.StatusBadRequest
	default:
		s.logger.ErrorContext(r.Context(), "request failed", slog.Any("error", err))
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.DebugContext(r.Context(), "request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("duration", time.Since(start)),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
