package migration

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"solarops/internal/shared/logger"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Manager handles database migrations with different strategies
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks the strategy for the database driver: versioned scripts for
// MySQL, model-driven AutoMigrate for SQLite.
func NewManager(driver string) *Manager {
	var strategy Strategy

	switch strings.ToLower(driver) {
	case DriverMySQL:
		strategy = NewGolangMigrateStrategy()
	default:
		strategy = NewGormAutoMigrateStrategy()
	}

	return NewManagerWithStrategy(strategy)
}

// NewManagerWithStrategy creates a new migration manager with a specific strategy
func NewManagerWithStrategy(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   logger.NewLogger().Named("migration.manager"),
	}
}

// Migrate executes the configured migration strategy
func (m *Manager) Migrate(db *gorm.DB, models ...any) error {
	m.logger.Infow("starting database migration",
		"strategy", m.strategy.GetName(),
		"models_count", len(models))

	if err := m.strategy.Migrate(db, models...); err != nil {
		m.logger.Errorw("migration failed",
			"strategy", m.strategy.GetName(),
			"error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully",
		"strategy", m.strategy.GetName())

	return nil
}

// GetStrategy returns the current migration strategy
func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}

// Versioned returns the script-based strategy, or false when the manager
// migrates from models.
func (m *Manager) Versioned() (*GolangMigrateStrategy, bool) {
	s, ok := m.strategy.(*GolangMigrateStrategy)
	return s, ok
}

// GetStrategyInfo returns information about the current strategy
func (m *Manager) GetStrategyInfo() map[string]any {
	return map[string]any{
		"name":        m.strategy.GetName(),
		"description": getStrategyDescription(m.strategy.GetName()),
	}
}

func getStrategyDescription(strategyName string) string {
	switch strategyName {
	case "gorm_auto_migrate":
		return "GORM AutoMigrate - Automatic schema migration based on struct definitions"
	case "golang_migrate":
		return "golang-migrate - Version-controlled SQL migration scripts"
	default:
		return "Unknown migration strategy"
	}
}
