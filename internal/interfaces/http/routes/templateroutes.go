package routes

import (
	"github.com/gin-gonic/gin"

	"solarops/internal/domain/permission"
	"solarops/internal/interfaces/http/handlers"
	"solarops/internal/interfaces/http/middleware"
	"solarops/internal/shared/authorization"
)

// TemplateRouteConfig holds dependencies for checklist template routes.
type TemplateRouteConfig struct {
	TemplateHandler      *handlers.TemplateHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupTemplateRoutes configures checklist template routes. Authoring is
// admin-only; everyone with template read access can browse.
func SetupTemplateRoutes(api *gin.RouterGroup, cfg *TemplateRouteConfig) {
	read := cfg.PermissionMiddleware.RequirePermission(permission.ResourceTemplates, permission.ActionRead)
	write := cfg.PermissionMiddleware.RequirePermission(permission.ResourceTemplates, permission.ActionWrite)

	templates := api.Group("/templates")
	templates.Use(cfg.AuthMiddleware.RequireAuth())
	{
		templates.GET("", read, cfg.TemplateHandler.List)
		templates.POST("", write, cfg.TemplateHandler.Create)
		templates.POST("/seed", authorization.RequireAdmin(), cfg.TemplateHandler.Seed)

		templates.GET("/:id", read, cfg.TemplateHandler.Get)
		templates.POST("/:id/revisions", write, cfg.TemplateHandler.Revise)
	}
}
