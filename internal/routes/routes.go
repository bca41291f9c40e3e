package routes

import (
	"time"

	"github.com/bsm/redislock"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"reconciliation-engine/internal/config"
	handler "reconciliation-engine/internal/handlers"
	service "reconciliation-engine/internal/services/reconciliation"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, locker *redislock.Client) {
	reconService := service.NewReconciliationService(db, locker)
	reconHandler := handler.NewReconciliationHandler(reconService)

	r.Use(RequestLogger())

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	reconHandler.Register(api.Group("/reconciliation"))
}

// RequestLogger logs one line per request through the shared logrus logger.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := config.GetLogger().WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.FullPath(),
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"user":     c.GetHeader(handler.UserHeader),
		})
		if c.Writer.Status() >= 500 {
			entry.Warn("request failed")
			return
		}
		entry.Info("request")
	}
}
