// Package server provides the HTTP server for the recipe generation API.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/mealforge/v1/internal/infrastructure/config"
	"github.com/mealforge/v1/internal/infrastructure/http/handlers"
	"github.com/mealforge/v1/internal/infrastructure/http/middleware"
	"github.com/mealforge/v1/internal/infrastructure/monitoring"
)

// Server represents the HTTP server
type Server struct {
	config  *config.Config
	logger  *zap.Logger
	router  *chi.Mux
	server  *http.Server
	metrics *monitoring.MetricsCollector
}

// NewServer creates a new HTTP server instance
func NewServer(
	cfg *config.Config,
	api *handlers.APIHandlers,
	metrics *monitoring.MetricsCollector,
	logger *zap.Logger,
) *Server {
	s := &Server{
		config:  cfg,
		logger:  logger.Named("server"),
		metrics: metrics,
	}

	s.router = s.setupRouter(api)
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s
}

func (s *Server) setupRouter(api *handlers.APIHandlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(s.logger))
	r.Use(chimiddleware.Recoverer)
	// Generation runs are long; the write timeout on the http.Server is the
	// effective bound, this guards handlers that hang before writing.
	r.Use(chimiddleware.Timeout(s.config.Server.WriteTimeout))

	r.Get("/health", api.HealthCheck)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/recipes/generate", api.GenerateRecipe)
		r.Get("/catalog", api.GetCatalog)
	})

	return r
}

// Router exposes the router for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start begins listening. It blocks until the listener stops.
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	ctx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}
