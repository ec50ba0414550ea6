package routes

import (
	"github.com/gin-gonic/gin"

	"talentmatch_backend/internal/handlers"
)

// RegisterRoutes registers all HTTP routes under /api/v1.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.AdminHandler.RegisterRoutes(api)
		appHandlers.HealthHandler.RegisterRoutes(api)
	}
}
