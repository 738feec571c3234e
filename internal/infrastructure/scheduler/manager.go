// Package scheduler runs the periodic back-office jobs using gocron v2.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"solarops/internal/application/agreement/usecases"
	"solarops/internal/shared/biztime"
	"solarops/internal/shared/logger"
)

const defaultMaintenanceInterval = time.Hour

// SchedulerManager owns the single gocron scheduler of the process.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	started   bool
	startedMu sync.RWMutex
}

// NewSchedulerManager creates a scheduler in the business timezone.
func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(biztime.Location()),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// RegisterAgreementMaintenance runs the expire/auto-renew sweep every interval,
// starting immediately. Runs never overlap.
func (m *SchedulerManager) RegisterAgreementMaintenance(job usecases.MaintainAgreementsExecutor, interval time.Duration) error {
	if interval <= 0 {
		interval = defaultMaintenanceInterval
	}

	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()
			m.maintainAgreements(ctx, job)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("agreement", "expire", "renew"),
		gocron.WithName("agreement-maintenance"),
	)
	if err != nil {
		return fmt.Errorf("failed to register agreement maintenance job: %w", err)
	}

	m.logger.Infow("registered agreement maintenance job", "interval", interval)
	return nil
}

func (m *SchedulerManager) maintainAgreements(ctx context.Context, job usecases.MaintainAgreementsExecutor) {
	m.logger.Debugw("agreement maintenance started")

	startTime := biztime.NowUTC()

	result, err := job.Execute(ctx)
	if err != nil {
		m.logger.Errorw("agreement maintenance failed",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	if result.Renewed+result.Expired+result.Failed == 0 {
		m.logger.Debugw("no lapsed agreements to process",
			"duration", time.Since(startTime),
		)
		return
	}

	m.logger.Infow("agreement maintenance completed",
		"renewed", result.Renewed,
		"expired", result.Expired,
		"failed", result.Failed,
		"duration", time.Since(startTime),
	)
}

// Start starts the scheduler and all registered jobs.
func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler manager started", "job_count", len(m.scheduler.Jobs()))
}

// Stop waits for running jobs to finish.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	m.logger.Infow("stopping scheduler manager")

	err := m.scheduler.Shutdown()
	m.started = false

	if err != nil {
		m.logger.Errorw("scheduler manager shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler manager stopped")
	return nil
}

// IsStarted returns whether the scheduler is running.
func (m *SchedulerManager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}

// Jobs returns all registered jobs for inspection.
func (m *SchedulerManager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}
