// Package httpapi exposes the admin endpoints for the background jobs.
package httpapi

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"noteflow/internal/domain"
)

type Ingester interface {
	FetchAll(ctx context.Context) (*domain.FetchSummary, error)
}

type Cleaner interface {
	ExecuteCleanup(ctx context.Context) (*domain.CleanupResult, error)
	Status() domain.CleanupStatus
}

type Config struct {
	Addr string
	// AdminToken, when set, is required as a bearer token on /api/admin.
	AdminToken string
}

type Server struct {
	ingester Ingester
	cleaner  Cleaner
	cfg      Config
	logger   *slog.Logger
	router   chi.Router
}

func New(cfg Config, ingester Ingester, cleaner Cleaner, logger *slog.Logger) *Server {
	s := &Server{
		ingester: ingester,
		cleaner:  cleaner,
		cfg:      cfg,
		logger:   logger.With("component", "httpapi"),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(s.requireToken)
		r.Post("/rss/fetch", s.handleFetch)
		r.Get("/cleanup/status", s.handleCleanupStatus)
		r.Post("/cleanup/run", s.handleCleanupRun)
	})

	s.router = r
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	s.logger.Info("http server stopped")
	return ctx.Err()
}

// handleFetch runs a full ingestion cycle. The cycle is detached from request
// cancellation: a client that disconnects does not abort it.
func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	summary, err := s.ingester.FetchAll(context.WithoutCancel(r.Context()))
	if err != nil {
		s.logger.Error("manual fetch failed", "error", err)
		if summary != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"error":   "fetch failed",
				"summary": summary,
			})
			return
		}
		writeError(w, http.StatusInternalServerError, "fetch failed")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleCleanupStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.cleaner.Status())
}

// handleCleanupRun is detached from request cancellation like handleFetch.
func (s *Server) handleCleanupRun(w http.ResponseWriter, r *http.Request) {
	result, err := s.cleaner.ExecuteCleanup(context.WithoutCancel(r.Context()))
	if err != nil {
		s.logger.Error("manual cleanup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "cleanup failed")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.AdminToken == "" {
			next.ServeHTTP(w, r)
			return
		}

		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(s.cfg.AdminToken)) != 1 {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
