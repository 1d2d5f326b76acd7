// Package server provides the local HTTP editing API: one live resume per process, edited with
// commands, scored automatically and rendered, exported or saved on request.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/navinkumarg9/pro-resume-mentor/internal/export"
	"github.com/navinkumarg9/pro-resume-mentor/internal/library"
	"github.com/navinkumarg9/pro-resume-mentor/internal/scoring"
	"github.com/navinkumarg9/pro-resume-mentor/internal/store"
	"github.com/navinkumarg9/pro-resume-mentor/internal/types"
)

// Exporter produces a PDF from a resume snapshot.
type Exporter interface {
	Export(ctx context.Context, doc types.Resume, mode export.Mode) (*export.Result, error)
}

// Config holds server configuration
type Config struct {
	Addr          string
	CORSOrigins   []string
	AnalysisDelay time.Duration
	// AutoSave saves the document to the library after each successful export.
	AutoSave bool
	// KeepAlive is the interval of SSE keep-alive comments.
	KeepAlive time.Duration
	Logger    *slog.Logger
}

// Server represents the HTTP server
type Server struct {
	cfg      Config
	logger   *slog.Logger
	store    *store.Store
	analyzer *scoring.AutoAnalyzer
	library  *library.Library
	exporter Exporter
	validate *validator.Validate
	router   chi.Router
}

// New creates a server around st. lib and exp may be nil, which disables their routes.
// The automatic analyzer starts immediately; Close stops it.
func New(cfg Config, st *store.Store, lib *library.Library, exp Exporter) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.KeepAlive <= 0 {
		cfg.KeepAlive = 15 * time.Second
	}

	s := &Server{
		cfg:      cfg,
		logger:   cfg.Logger,
		store:    st,
		library:  lib,
		exporter: exp,
		validate: validator.New(),
		analyzer: scoring.NewAutoAnalyzer(st,
			scoring.WithDelay(cfg.AnalysisDelay),
			scoring.WithLogger(cfg.Logger)),
	}
	s.analyzer.Start()
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.withLogging)
	r.Use(middleware.Recoverer)
	r.Use(s.withCORS)

	r.Get("/health", s.handleHealth)

	r.Get("/resume", s.handleGetResume)
	r.Put("/resume", s.handlePutResume)
	r.Post("/resume/reset", s.handleResetResume)
	r.Post("/commands", s.handleCommands)

	r.Get("/analysis", s.handleGetAnalysis)
	r.Post("/analysis", s.handleAnalyze)
	r.Get("/analysis/breakdown", s.handleBreakdown)
	r.Get("/events", s.handleEvents)

	r.Get("/templates", s.handleTemplates)
	r.Get("/preview", s.handlePreview)
	r.Get("/preview.md", s.handlePreviewMarkdown)
	r.Get("/preview.tex", s.handlePreviewLaTeX)
	r.Post("/export", s.handleExport)

	r.Route("/library", func(r chi.Router) {
		r.Get("/", s.handleListLibrary)
		r.Post("/", s.handleSaveLibrary)
		r.Get("/{id}", s.handleGetLibraryEntry)
		r.Post("/{id}/load", s.handleLoadLibraryEntry)
		r.Delete("/{id}", s.handleDeleteLibraryEntry)
	})
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on cfg.Addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
		// Request contexts end with ctx so open event streams let Shutdown finish.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("server starting", "addr", s.cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	err := g.Wait()
	s.Close()
	s.logger.Info("server stopped")
	return err
}

// Close stops the automatic analyzer.
func (s *Server) Close() {
	s.analyzer.Stop()
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := s.allowedOrigin(r.Header.Get("Origin")); origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Page-Count, X-Library-Entry")
			w.Header().Add("Vary", "Origin")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) allowedOrigin(origin string) string {
	if len(s.cfg.CORSOrigins) == 0 {
		return "*"
	}
	for _, o := range s.cfg.CORSOrigins {
		if o == "*" || strings.EqualFold(o, origin) {
			return origin
		}
	}
	return ""
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
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
		s.logger.Error("failed to encode JSON response", "error", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// fail writes err with the status HTTPStatus picks for it.
func (s *Server) fail(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "status", status, "error", err)
	}
	s.errorResponse(w, status, err.Error())
}

// decodeJSON decodes the request body into v and validates it.
func (s *Server) decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	if err := s.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return &ErrValidation{Field: verrs[0].Field(), Message: "failed '" + verrs[0].Tag() + "'"}
		}
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	return nil
}
