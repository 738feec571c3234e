// Package bootstrap prepares the process-wide state every command needs:
// configuration, logging, business timezone and the database handle.
package bootstrap

import (
	"fmt"

	"solarops/internal/infrastructure/config"
	"solarops/internal/infrastructure/database"
	"solarops/internal/shared/biztime"
	"solarops/internal/shared/logger"
)

// Init loads the configuration and initializes logger and business timezone.
func Init(env, configPath string) (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode == "debug"); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Initialize business timezone for date boundary calculations
	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	return cfg, logger.NewLogger(), nil
}

// InitWithDatabase is Init followed by opening the database. Callers close it
// with database.Close.
func InitWithDatabase(env, configPath string) (*config.Config, logger.Interface, error) {
	cfg, log, err := Init(env, configPath)
	if err != nil {
		return nil, nil, err
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return cfg, log, nil
}
