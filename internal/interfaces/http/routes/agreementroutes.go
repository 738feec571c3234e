package routes

import (
	"github.com/gin-gonic/gin"

	"solarops/internal/domain/permission"
	"solarops/internal/interfaces/http/handlers"
	"solarops/internal/interfaces/http/middleware"
)

// AgreementRouteConfig holds dependencies for agreement and add-on catalog routes.
type AgreementRouteConfig struct {
	AgreementHandler     *handlers.AgreementHandler
	AddonHandler         *handlers.AddonHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupAgreementRoutes configures agreement lifecycle, pricing and add-on routes.
func SetupAgreementRoutes(api *gin.RouterGroup, cfg *AgreementRouteConfig) {
	read := cfg.PermissionMiddleware.RequirePermission(permission.ResourceAgreements, permission.ActionRead)
	write := cfg.PermissionMiddleware.RequirePermission(permission.ResourceAgreements, permission.ActionWrite)

	agreements := api.Group("/agreements")
	agreements.Use(cfg.AuthMiddleware.RequireAuth())
	{
		agreements.GET("", read, cfg.AgreementHandler.List)
		agreements.POST("", write, cfg.AgreementHandler.Create)

		// Static paths before /:id
		agreements.POST("/calculate-price", read, cfg.AgreementHandler.CalculatePrice)
		agreements.GET("/by-number/:number", read, cfg.AgreementHandler.GetByNumber)

		agreements.GET("/:id", read, cfg.AgreementHandler.Get)
		agreements.PATCH("/:id", write, cfg.AgreementHandler.Update)
		agreements.POST("/:id/activate", write, cfg.AgreementHandler.Activate)
		agreements.POST("/:id/cancel", write, cfg.AgreementHandler.Cancel)
		agreements.POST("/:id/status/:action", write, cfg.AgreementHandler.ChangeStatus)
	}

	addonRead := cfg.PermissionMiddleware.RequirePermission(permission.ResourceAddons, permission.ActionRead)
	addonWrite := cfg.PermissionMiddleware.RequirePermission(permission.ResourceAddons, permission.ActionWrite)

	addons := api.Group("/addons")
	addons.Use(cfg.AuthMiddleware.RequireAuth())
	{
		addons.GET("", addonRead, cfg.AddonHandler.List)
		addons.POST("", addonWrite, cfg.AddonHandler.Create)
		addons.PATCH("/:id", addonWrite, cfg.AddonHandler.Update)
	}
}
