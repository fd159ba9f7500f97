// Package server exposes the tax engine over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/iitgo/internal/breakeven"
	"github.com/rgehrsitz/iitgo/internal/calculation"
	"github.com/rgehrsitz/iitgo/internal/config"
	"go.uber.org/zap"
)

// Server is the HTTP adapter around a calculation engine
type Server struct {
	config     config.ServerConfig
	limits     config.RateLimitConfig
	httpServer *http.Server
	router     *gin.Engine
	engine     *calculation.Engine
	solver     *breakeven.Solver
	logger     *zap.Logger
}

// NewServer creates a server with its middleware and routes in place
func NewServer(cfg config.ServerConfig, limits config.RateLimitConfig, engine *calculation.Engine, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		config: cfg,
		limits: limits,
		router: gin.New(),
		engine: engine,
		solver: breakeven.NewDefaultSolver(engine),
		logger: logger,
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for the router
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(requestIDMiddleware())
	s.router.Use(s.loggingMiddleware())
	if s.limits.RequestsPerSecond > 0 {
		s.router.Use(newClientLimiter(s.limits, 3*time.Minute).middleware())
	}
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	h := NewHandlers(s.engine, s.solver, s.logger, s.config.BodyLimit())

	s.router.GET("/health", h.HealthCheck)
	s.router.GET("/rules", h.Rules)
	s.router.GET("/bonus/traps", h.BonusTraps)
	s.router.POST("/calculate", h.Calculate)
}

// Start runs the server until ctx is cancelled or listening fails
func (s *Server) Start(ctx context.Context) error {
	addr := s.config.Addr()

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("Starting HTTP server",
		zap.String("address", addr),
		zap.String("rules_version", s.engine.Rules().Metadata.Version))

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("HTTP server shutdown requested")
		return s.Stop()
	case err := <-errCh:
		s.logger.Error("HTTP server error", zap.Error(err))
		return err
	}
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("Stopping HTTP server")

	timeout := s.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", zap.Error(err))
		return err
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// Router returns the underlying gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Address returns the server address
func (s *Server) Address() string {
	return s.config.Addr()
}
