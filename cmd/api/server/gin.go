package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	ginhandler "login-signup-service/internal/adapter/gin/handler"
	ginrouter "login-signup-service/internal/adapter/gin/router"
	"login-signup-service/internal/config"
)

// SetupGinServer creates and configures the Gin REST API server
func SetupGinServer(handler *ginhandler.AuthHandler, cfg *config.Config, l *zap.Logger) *http.Server {
	router := ginrouter.SetupRouter(handler, ginrouter.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Debug:          cfg.Logger.Level == "debug" && cfg.App.Env == "development",
	}, l)

	l.Info("Gin REST API configured",
		zap.String("address", cfg.App.Addr()),
		zap.Strings("cors_allowed_origins", cfg.CORS.AllowedOrigins),
	)

	return &http.Server{
		Addr:              cfg.App.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
