package http

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"solarops/internal/application/notification"
	notificationUsecases "solarops/internal/application/notification/usecases"
	visitUsecases "solarops/internal/application/visit/usecases"
	"solarops/internal/domain/shared/events"
	"solarops/internal/domain/visit"
	"solarops/internal/infrastructure/auth"
	"solarops/internal/infrastructure/config"
	"solarops/internal/infrastructure/email"
	"solarops/internal/infrastructure/integrations"
	"solarops/internal/infrastructure/metrics"
	infraPermission "solarops/internal/infrastructure/permission"
	"solarops/internal/infrastructure/ratelimit"
	"solarops/internal/infrastructure/report"
	"solarops/internal/infrastructure/scheduler"
	"solarops/internal/interfaces/http/middleware"
	"solarops/internal/shared/db"
	"solarops/internal/shared/logger"
)

const defaultMaintenanceInterval = time.Hour

// integrationClients holds the optional outbound integrations. Fields stay nil
// interfaces when the integration is not configured.
type integrationClients struct {
	technicians visitUsecases.TechnicianDirectory
	accounting  visitUsecases.AccountingExporter
}

// ============================================================
// Section 1: Infrastructure - Redis, Repositories, Auth, Events
// ============================================================

// initInfrastructure initializes Redis, all repositories, auth and permission
// services, and the shared event, transaction, metrics and report services.
func (c *Container) initInfrastructure() error {
	cfg := c.cfg
	log := c.log

	// Redis is optional; without it add-on products are read from the database.
	if cfg.Redis.Enabled() {
		c.redis = initRedis(cfg, log)
	}

	// Initialize all repositories
	c.repos = newRepositories(c.db, c.redis, log)

	// Initialize auth and permission services
	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	enforcer, err := infraPermission.NewEnforcer(c.db, log)
	if err != nil {
		return fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	if err := infraPermission.InitDefaultPermissions(enforcer, log); err != nil {
		return fmt.Errorf("failed to initialize default permissions: %w", err)
	}
	c.enforcer = enforcer

	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.enforcer, log)
	if c.redis != nil && cfg.Server.RateLimitPerMinute > 0 {
		c.rateLimiter = middleware.NewRateLimiter(
			ratelimit.NewRedisRateLimiter(c.redis),
			ratelimit.Limits{PerMinute: cfg.Server.RateLimitPerMinute},
			log,
		)
	}

	// Shared services
	c.txMgr = db.NewTransactionManager(c.db)
	c.dispatcher = events.NewInMemoryEventDispatcher(eventBufferSize, log)
	c.recorder = metrics.NewRecorder()

	renderer, err := report.NewRenderer(cfg.Pricing.Locale)
	if err != nil {
		return fmt.Errorf("failed to create report renderer: %w", err)
	}
	c.renderer = renderer

	c.integrations = initIntegrations(cfg, log)
	return nil
}

// initRedis creates and tests the Redis client connection.
func initRedis(cfg *config.Config, log logger.Interface) *redis.Client {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("failed to connect to Redis", "error", err)
	}
	log.Infow("Redis connection established successfully")

	return redisClient
}

// initIntegrations creates clients for the integrations that have a base URL configured.
func initIntegrations(cfg *config.Config, log logger.Interface) *integrationClients {
	clients := &integrationClients{}

	if cfg.Integrations.Directory.Enabled() {
		clients.technicians = integrations.NewDirectoryClient(cfg.Integrations.Directory, log)
		log.Infow("technician directory integration enabled", "base_url", cfg.Integrations.Directory.BaseURL)
	} else {
		log.Infow("technician directory integration disabled, technician IDs are not verified")
	}

	if cfg.Integrations.Accounting.Enabled() {
		clients.accounting = integrations.NewAccountingClient(cfg.Integrations.Accounting, log)
		log.Infow("accounting integration enabled", "base_url", cfg.Integrations.Accounting.BaseURL)
	} else {
		log.Infow("accounting integration disabled, invoice export unavailable")
	}

	return clients
}

// ============================================================
// Section 3: Event subscribers - service report emails
// ============================================================

// initNotifications subscribes the service report mailer to visit completion.
// Skipped when SMTP or the operations address is not configured.
func (c *Container) initNotifications() error {
	cfg := c.cfg
	log := c.log

	if !cfg.Email.Enabled() {
		log.Infow("email not configured, service reports disabled")
		return nil
	}

	mailer, err := email.NewSMTPMailer(cfg.Email, log)
	if err != nil {
		return fmt.Errorf("failed to create SMTP mailer: %w", err)
	}

	r := c.repos
	sendReportUC := notificationUsecases.NewSendServiceReportUseCase(
		r.visitRepo,
		r.agreementRepo,
		r.checklistRepo,
		r.templateRepo,
		c.renderer,
		mailer,
		cfg.Email.OperationsAddress,
		log,
	)

	if err := c.dispatcher.Subscribe(visit.EventVisitCompleted, notification.NewVisitCompletedHandler(sendReportUC, log)); err != nil {
		return fmt.Errorf("failed to subscribe service report handler: %w", err)
	}

	log.Infow("service report emails enabled", "recipient", cfg.Email.OperationsAddress)
	return nil
}

// ============================================================
// Section 4: Scheduler - agreement expiry and renewal
// ============================================================

// initScheduler registers the periodic agreement maintenance job.
func (c *Container) initScheduler() error {
	if !c.cfg.Scheduler.Enabled {
		c.log.Infow("scheduler disabled, run agreement maintenance through the admin endpoint")
		return nil
	}

	manager, err := scheduler.NewSchedulerManager(c.log)
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	interval := time.Duration(c.cfg.Scheduler.MaintenanceIntervalMinutes) * time.Minute
	if interval <= 0 {
		interval = defaultMaintenanceInterval
	}
	if err := manager.RegisterAgreementMaintenance(c.ucs.maintainAgreementsUC, interval); err != nil {
		return fmt.Errorf("failed to register agreement maintenance: %w", err)
	}

	c.schedulerManager = manager
	return nil
}
