package routes

import (
	"github.com/gin-gonic/gin"

	"solarops/internal/domain/permission"
	"solarops/internal/interfaces/http/handlers"
	"solarops/internal/interfaces/http/middleware"
	"solarops/internal/shared/authorization"
	"solarops/internal/shared/constants"
)

// VisitRouteConfig holds dependencies for visit and checklist routes.
type VisitRouteConfig struct {
	VisitHandler         *handlers.VisitHandler
	ChecklistHandler     *handlers.ChecklistHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupVisitRoutes configures visit lifecycle routes and the checklists
// hanging off a visit. Scheduling, cancelling and invoicing are office work;
// technicians start, complete and document their own visits.
func SetupVisitRoutes(api *gin.RouterGroup, cfg *VisitRouteConfig) {
	read := cfg.PermissionMiddleware.RequirePermission(permission.ResourceVisits, permission.ActionRead)
	write := cfg.PermissionMiddleware.RequirePermission(permission.ResourceVisits, permission.ActionWrite)
	office := authorization.RequireRole(constants.RoleAdmin, constants.RoleDispatcher)

	visits := api.Group("/visits")
	visits.Use(cfg.AuthMiddleware.RequireAuth())
	{
		visits.GET("", read, cfg.VisitHandler.List)
		visits.POST("", write, office, cfg.VisitHandler.Create)

		visits.GET("/:id", read, cfg.VisitHandler.Get)
		visits.PATCH("/:id", write, cfg.VisitHandler.Update)
		visits.POST("/:id/start", write, cfg.VisitHandler.Start)
		visits.POST("/:id/complete", write, cfg.VisitHandler.Complete)
		visits.POST("/:id/signature", write, cfg.VisitHandler.RecordSignature)
		visits.POST("/:id/photos", write, cfg.VisitHandler.AddPhoto)
		visits.POST("/:id/cancel", write, office, cfg.VisitHandler.Cancel)
		visits.POST("/:id/reschedule", write, office, cfg.VisitHandler.Reschedule)
		visits.POST("/:id/invoice", write, office, cfg.VisitHandler.ExportInvoice)

		checklistRead := cfg.PermissionMiddleware.RequirePermission(permission.ResourceChecklists, permission.ActionRead)
		checklistWrite := cfg.PermissionMiddleware.RequirePermission(permission.ResourceChecklists, permission.ActionWrite)
		visits.GET("/:id/checklists", checklistRead, cfg.ChecklistHandler.ListByVisit)
		visits.POST("/:id/checklists", checklistWrite, cfg.ChecklistHandler.Create)
	}
}

// SetupChecklistRoutes configures checklist execution routes.
func SetupChecklistRoutes(api *gin.RouterGroup, cfg *VisitRouteConfig) {
	read := cfg.PermissionMiddleware.RequirePermission(permission.ResourceChecklists, permission.ActionRead)
	write := cfg.PermissionMiddleware.RequirePermission(permission.ResourceChecklists, permission.ActionWrite)

	checklists := api.Group("/checklists")
	checklists.Use(cfg.AuthMiddleware.RequireAuth())
	{
		checklists.GET("/:id", read, cfg.ChecklistHandler.Get)
		checklists.GET("/:id/report", read, cfg.ChecklistHandler.Report)
		checklists.POST("/:id/start", write, cfg.ChecklistHandler.Start)
		checklists.PATCH("/:id/items", write, cfg.ChecklistHandler.UpdateItems)
		checklists.PATCH("/:id/items/:item_id", write, cfg.ChecklistHandler.UpdateItem)
		checklists.POST("/:id/complete", write, cfg.ChecklistHandler.Complete)
	}
}
