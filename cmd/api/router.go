package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"book-catalog/internal/shared/middleware"
	"book-catalog/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(c.Config.App.CORSOrigins),
	)

	router.GET("/health", healthCheckHandler(c))

	writeGuard := middleware.WriteGuard(c.JWTManager, c.Config.Auth.Enabled)

	v1 := router.Group("/api/v1")
	{
		c.AuthorHandler.RegisterRoutes(v1, writeGuard)
		c.BookHandler.RegisterRoutes(v1, writeGuard)
	}

	return router
}

// ========================================
// HEALTH CHECK
// ========================================

// healthCheckHandler reports 503 when the database is down.
// The cache is optional, so a failing ping only marks it in the body.
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := http.StatusOK
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		// Check database
		dbStatus := "ok"
		if appCtx.DB == nil {
			dbStatus = "memory"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = "error: " + err.Error()
				health["status"] = "degraded"
				status = http.StatusServiceUnavailable
			}
		}

		// Check cache
		cacheStatus := "ok"
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := appCtx.Cache.Ping(ctx); err != nil {
			cacheStatus = "error: " + err.Error()
		}

		services := gin.H{
			"database": dbStatus,
			"cache":    cacheStatus,
		}

		// Check object storage
		if appCtx.Objects != nil {
			storageStatus := "ok"
			if err := appCtx.Objects.Ping(ctx); err != nil {
				storageStatus = "error: " + err.Error()
			}
			services["storage"] = storageStatus
		}

		health["services"] = services

		c.JSON(status, health)
	}
}
