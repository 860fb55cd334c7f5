package router

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/partyops/jumpkitchen/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(handler *handlers.ScheduleHandler, webDir string, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	if webDir != "" {
		r.StaticFile("/", filepath.Join(webDir, "cuisine.html"))
		r.StaticFile("/admin", filepath.Join(webDir, "admin.html"))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/venues/:venue")
	{
		api.POST("/upload", handler.Upload)
		api.GET("/reservations", handler.Reservations)
		api.GET("/kitchen", handler.Kitchen)
		api.POST("/reservations/:id", handler.Update)
		api.POST("/reservations/:id/done", handler.Done)
		api.DELETE("/reservations/:id", handler.Delete)
		api.POST("/validate", handler.Validate)
		api.POST("/unvalidate", handler.Unvalidate)
		api.POST("/reset", handler.Reset)
		api.POST("/export", handler.Export)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
