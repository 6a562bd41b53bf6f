// Package server is the HTTP shell around a dashboard. It serves the selector page and
// the chart specs as JSON, and forwards selector changes to the dashboard's dispatch table.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ademuri/song-dashboard/internal/dashboard"
)

//go:embed templates/*
var embeddedFiles embed.FS

const shutdownTimeout = 10 * time.Second

type Server struct {
	dash   *dashboard.Dashboard
	logger *zap.Logger
	router *chi.Mux
	page   *template.Template
}

func New(dash *dashboard.Dashboard, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	page, err := template.ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	s := &Server{
		dash:   dash,
		logger: logger,
		router: chi.NewRouter(),
		page:   page,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleIndex)
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/controls", s.handleControls)
		r.Get("/charts", s.handleCharts)
		r.Get("/charts/{chartID}", s.handleChart)
		r.Post("/events", s.handleEvent)
		r.Get("/summary", s.handleSummary)
	})
}

// Handler returns the router, for tests and for embedding in another server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("Serving dashboard", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	})
	return g.Wait()
}
