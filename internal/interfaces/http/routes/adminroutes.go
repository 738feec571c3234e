package routes

import (
	"github.com/gin-gonic/gin"

	"solarops/internal/interfaces/http/handlers"
	"solarops/internal/interfaces/http/middleware"
	"solarops/internal/shared/authorization"
)

// AdminRouteConfig holds dependencies for operational admin routes.
type AdminRouteConfig struct {
	AgreementHandler *handlers.AgreementHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

// SetupAdminRoutes configures admin-only maintenance triggers.
func SetupAdminRoutes(api *gin.RouterGroup, cfg *AdminRouteConfig) {
	admin := api.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireAuth())
	admin.Use(authorization.RequireAdmin())
	{
		admin.POST("/agreements/maintenance", cfg.AgreementHandler.RunMaintenance)
	}
}
