package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pageza/recipe-tracker/backend/internal/database"
	"github.com/pageza/recipe-tracker/backend/internal/middleware"
	"github.com/pageza/recipe-tracker/backend/internal/service"
	"github.com/pageza/recipe-tracker/backend/internal/storage"
)

// Dependencies are the collaborators the HTTP layer needs. Images and
// RateLimiter are optional.
type Dependencies struct {
	DB          *gorm.DB
	Recipes     service.IRecipeService
	Tags        service.ITagService
	Equipment   service.IEquipmentService
	Images      storage.ImagePresigner
	RateLimiter *middleware.RateLimiter
}

// HealthCheck reports whether the API can reach its database
func HealthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := database.HealthCheck(ctx, db); err != nil {
			slog.ErrorContext(ctx, "health check failed", slog.Any("error", err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": "database unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	}
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	router.GET("/health", HealthCheck(deps.DB))
	router.GET("/api/health", HealthCheck(deps.DB))

	var writeMiddleware []gin.HandlerFunc
	if deps.RateLimiter != nil {
		writeMiddleware = append(writeMiddleware, deps.RateLimiter.RateLimitMiddleware())
	}

	v1 := router.Group("/api/v1")
	NewRecipeHandler(deps.Recipes, deps.Tags, deps.Equipment, writeMiddleware...).RegisterRoutes(v1)
	if deps.Images != nil {
		NewImageHandler(deps.Images, writeMiddleware...).RegisterRoutes(v1)
	} else {
		slog.Info("image uploads disabled: no S3 bucket configured")
	}
}
