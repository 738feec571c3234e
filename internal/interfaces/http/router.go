package http

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"solarops/internal/infrastructure/config"
	"solarops/internal/interfaces/http/middleware"
	"solarops/internal/interfaces/http/routes"
	"solarops/internal/shared/constants"
	"solarops/internal/shared/logger"
)

// Router represents the HTTP router configuration
type Router struct {
	*Container
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Router, error) {
	c, err := NewContainer(db, cfg, log)
	if err != nil {
		return nil, err
	}
	return &Router{Container: c}, nil
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.log))
	r.engine.Use(middleware.Recovery(r.log))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())
	r.engine.Use(middleware.Metrics(r.recorder))

	r.engine.GET("/health", r.hdlrs.healthHandler.Health)
	r.engine.GET("/version", r.hdlrs.healthHandler.Version)
	r.engine.GET("/metrics", gin.WrapH(r.recorder.Handler()))

	api := r.engine.Group(constants.APIVersionPrefix)
	if r.rateLimiter != nil {
		api.Use(r.rateLimiter.Limit())
	}

	routes.SetupInstallationRoutes(api, &routes.InstallationRouteConfig{
		InstallationHandler:  r.hdlrs.installationHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
	})

	routes.SetupAgreementRoutes(api, &routes.AgreementRouteConfig{
		AgreementHandler:     r.hdlrs.agreementHandler,
		AddonHandler:         r.hdlrs.addonHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
	})

	visitCfg := &routes.VisitRouteConfig{
		VisitHandler:         r.hdlrs.visitHandler,
		ChecklistHandler:     r.hdlrs.checklistHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
	}
	routes.SetupVisitRoutes(api, visitCfg)
	routes.SetupChecklistRoutes(api, visitCfg)

	routes.SetupTemplateRoutes(api, &routes.TemplateRouteConfig{
		TemplateHandler:      r.hdlrs.templateHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
	})

	routes.SetupAdminRoutes(api, &routes.AdminRouteConfig{
		AgreementHandler: r.hdlrs.agreementHandler,
		AuthMiddleware:   r.authMiddleware,
	})
}

// StartBackgroundServices starts the event dispatcher and, when enabled, the scheduler.
func (r *Router) StartBackgroundServices() error {
	if err := r.dispatcher.Start(); err != nil {
		return fmt.Errorf("failed to start event dispatcher: %w", err)
	}
	if r.schedulerManager != nil {
		r.schedulerManager.Start()
	}
	return nil
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}

// Shutdown stops background services in reverse start order. The database is
// closed by the caller.
func (r *Router) Shutdown() {
	if r.schedulerManager != nil {
		if err := r.schedulerManager.Stop(); err != nil {
			r.log.Warnw("scheduler stopped with error", "error", err)
		}
	}

	if err := r.dispatcher.Stop(); err != nil {
		r.log.Warnw("event dispatcher stopped with error", "error", err)
	}

	if r.redis != nil {
		if err := r.redis.Close(); err != nil {
			r.log.Warnw("failed to close Redis client", "error", err)
		}
	}

	r.log.Infow("router shutdown complete")
}
