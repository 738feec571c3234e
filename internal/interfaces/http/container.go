package http

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"solarops/internal/domain/shared/events"
	"solarops/internal/infrastructure/auth"
	"solarops/internal/infrastructure/config"
	"solarops/internal/infrastructure/metrics"
	infraPermission "solarops/internal/infrastructure/permission"
	"solarops/internal/infrastructure/report"
	"solarops/internal/infrastructure/scheduler"
	"solarops/internal/interfaces/http/middleware"
	"solarops/internal/shared/db"
	"solarops/internal/shared/logger"
)

const eventBufferSize = 256

// Container holds all infrastructure components, repositories, use cases, handlers,
// and background services. It is responsible for wiring everything together and
// providing a Shutdown() method for graceful termination.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	// Repositories
	repos *repositories

	// Use cases
	ucs *allUseCases

	// Handlers
	hdlrs *allHandlers

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	rateLimiter          *middleware.RateLimiter

	// Shared services
	jwtSvc     *auth.JWTService
	enforcer   *infraPermission.Enforcer
	txMgr      *db.TransactionManager
	dispatcher *events.InMemoryEventDispatcher
	recorder   *metrics.Recorder
	renderer   *report.Renderer

	// Outbound integrations, nil when not configured
	integrations *integrationClients

	// Background services
	schedulerManager *scheduler.SchedulerManager
}

// NewContainer creates a new Container with all dependencies wired together.
// Sections run in dependency order: later sections read fields set by earlier ones.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	// Section 1: Infrastructure - Redis, Repositories, Auth, Events
	if err := c.initInfrastructure(); err != nil {
		return nil, fmt.Errorf("failed to initialize infrastructure: %w", err)
	}

	// Section 2: Use cases and handlers
	c.ucs = c.newUseCases()
	c.hdlrs = c.newHandlers()

	// Section 3: Event subscribers - service report emails
	if err := c.initNotifications(); err != nil {
		return nil, fmt.Errorf("failed to initialize notifications: %w", err)
	}

	// Section 4: Scheduler - agreement expiry and renewal
	if err := c.initScheduler(); err != nil {
		return nil, fmt.Errorf("failed to initialize scheduler: %w", err)
	}

	return c, nil
}
