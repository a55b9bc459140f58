package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/memolab/internal/config"
	"github.com/vango-dev/memolab/internal/lessons"
	"github.com/vango-dev/memolab/internal/telemetry"
	"github.com/vango-dev/memolab/pkg/hooks"
	"github.com/vango-dev/memolab/pkg/render"
)

const shutdownTimeout = 10 * time.Second

// Options are the optional dependencies of a Server.
type Options struct {
	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Registry receives the pass metrics and backs /metrics. A fresh
	// registry with the Go and process collectors is used if nil.
	Registry *prometheus.Registry
}

// Server serves the lessons.
type Server struct {
	cfg        *config.Config
	catalog    *lessons.Catalog
	hub        *Hub
	router     chi.Router
	renderer   *render.Renderer
	registry   *prometheus.Registry
	metrics    *telemetry.Metrics
	httpServer *http.Server
	logger     *slog.Logger
}

// New creates a Server and mounts every lesson.
func New(cfg *config.Config, opts Options) (*Server, error) {
	if cfg == nil {
		cfg = config.New()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	registry := opts.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	hub := NewHub(logger)
	observer, metrics := telemetry.NewObserver(cfg, logger, registry)
	catalog, err := lessons.NewCatalog(lessons.Config{
		Logger:   logger,
		Observer: hooks.Observers(observer, hub),
	})
	if err != nil {
		hub.Close()
		return nil, err
	}

	s := &Server{
		cfg:      cfg,
		catalog:  catalog,
		hub:      hub,
		renderer: render.NewRenderer(render.RendererConfig{Pretty: cfg.Debug}),
		registry: registry,
		metrics:  metrics,
		logger:   logger,
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleHome)
	r.Get("/healthz", s.handleHealth)
	r.Get("/ws", s.hub.HandleWebSocket)
	if s.cfg.Metrics.Enabled {
		r.Handle(s.cfg.Metrics.Path, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry}))
	}

	r.Route("/lessons/{id}", func(r chi.Router) {
		r.Get("/", s.handleLesson)
		r.Get("/counts", s.handleCounts)
		r.Post("/slots/{slot}/bump", s.handleBump)
		r.Post("/reset", s.handleReset)
	})
	return r
}

// requestLogger logs one line per request through slog.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Catalog returns the mounted lessons.
func (s *Server) Catalog() *lessons.Catalog {
	return s.catalog
}

// Hub returns the notification hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Metrics returns the pass metrics, or nil if metrics are disabled.
func (s *Server) Metrics() *telemetry.Metrics {
	return s.metrics
}

// Run starts the server and blocks until ctx is done, a signal arrives or
// the listener fails.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Address(),
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", s.cfg.URL())
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.close()
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-shutdown:
		s.logger.Info("shutting down...")
	case <-ctx.Done():
	}
	return s.Shutdown(context.Background())
}

// Shutdown gracefully stops the HTTP server and disposes the lessons.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	defer s.close()
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}
	s.logger.Info("server shutdown complete")
	return nil
}

func (s *Server) close() {
	s.hub.Close()
	s.catalog.Close()
}
