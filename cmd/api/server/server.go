package server

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	ginhandler "login-signup-service/internal/adapter/gin/handler"
	"login-signup-service/internal/config"
)

// Server struct holds all server dependencies
type Server struct {
	Config *config.Config
	Logger *zap.Logger
	Gin    *http.Server
}

// New creates a new server instance
func New(cfg *config.Config, l *zap.Logger, authHandler *ginhandler.AuthHandler) *Server {
	return &Server{
		Config: cfg,
		Logger: l,
		Gin:    SetupGinServer(authHandler, cfg, l),
	}
}

// Start serves HTTP until the server is shut down. A clean shutdown returns nil.
func (s *Server) Start() error {
	s.Logger.Info("HTTP server running", zap.String("address", s.Gin.Addr))

	if err := s.Gin.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve HTTP: %w", err)
	}
	return nil
}
