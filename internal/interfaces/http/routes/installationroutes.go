package routes

import (
	"github.com/gin-gonic/gin"

	"solarops/internal/domain/permission"
	"solarops/internal/interfaces/http/handlers"
	"solarops/internal/interfaces/http/middleware"
)

// InstallationRouteConfig holds dependencies for installation routes.
type InstallationRouteConfig struct {
	InstallationHandler  *handlers.InstallationHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupInstallationRoutes configures installation registry routes.
func SetupInstallationRoutes(api *gin.RouterGroup, cfg *InstallationRouteConfig) {
	installations := api.Group("/installations")
	installations.Use(cfg.AuthMiddleware.RequireAuth())
	{
		read := cfg.PermissionMiddleware.RequirePermission(permission.ResourceInstallations, permission.ActionRead)
		write := cfg.PermissionMiddleware.RequirePermission(permission.ResourceInstallations, permission.ActionWrite)

		installations.GET("", read, cfg.InstallationHandler.List)
		installations.POST("", write, cfg.InstallationHandler.Create)
		installations.GET("/:id", read, cfg.InstallationHandler.Get)
	}
}
