package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler *Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		// Provider ingestion health (public read access)
		v1.GET("/providers/status", handler.GetProviderStatus)

		// Trigger a full ingestion pass (requires API key authentication)
		v1.POST("/fetch", middleware.APIKeyAuth(authCfg), handler.TriggerIngestion)
	}
}
