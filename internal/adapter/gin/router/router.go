package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"login-signup-service/internal/adapter/gin/handler"
	"login-signup-service/internal/adapter/gin/middleware"
	"login-signup-service/pkg/logger"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "login-signup-service"

// Options configures SetupRouter.
type Options struct {
	AllowedOrigins []string
	Debug          bool
}

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(authHandler *handler.AuthHandler, opts Options, log *zap.Logger) *gin.Engine {
	if opts.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(logger.RequestIDMiddleware())
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))
	router.Use(middleware.CORS(opts.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": ServiceName,
		})
	})

	router.POST("/signup", authHandler.Signup)
	router.POST("/login", authHandler.Login)

	return router
}
