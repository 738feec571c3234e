package migrate

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"solarops/internal/infrastructure/config"
	"solarops/internal/infrastructure/database"
	"solarops/internal/infrastructure/migration"
	"solarops/internal/interfaces/cli/bootstrap"
	"solarops/internal/shared/logger"
)

const scriptsDir = "./internal/infrastructure/migration/scripts"

var (
	env        string
	configPath string
	name       string
	steps      int
	version    int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations including running migrations, checking status, and creating new migration files.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newForceCommand(),
		newCreateCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		Long:  `Apply all pending database migrations to bring the database schema up to date. SQLite databases are migrated from the models.`,
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		Long:  `Rollback a specified number of database migrations.`,
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Long:  `Display the current migration version and status of the database.`,
		RunE:  runStatus,
	}
}

func newForceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "force",
		Short: "Force the migration version",
		Long:  `Set the migration version and clear the dirty flag after a failed migration was repaired by hand.`,
		RunE:  runForce,
	}

	cmd.Flags().IntVarP(&version, "version", "v", 0, "Version to force (required)")
	_ = cmd.MarkFlagRequired("version")

	return cmd
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new migration",
		Long:  `Create new migration files with the specified name.`,
		RunE:  runCreate,
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the migration (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func initEnv() (*config.Config, logger.Interface, error) {
	return bootstrap.InitWithDatabase(env, configPath)
}

// versioned returns the script-based strategy, which only exists for MySQL.
func versioned(cfg *config.Config, action string) (*migration.GolangMigrateStrategy, error) {
	strategy, ok := migration.NewManager(cfg.Database.Driver).Versioned()
	if !ok {
		return nil, fmt.Errorf("%s is only supported for versioned (mysql) migrations", action)
	}
	return strategy, nil
}

func runUp(cmd *cobra.Command, args []string) error {
	cfg, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running up migrations", "environment", env, "driver", cfg.Database.Driver)

	manager := migration.NewManager(cfg.Database.Driver)
	if err := manager.Migrate(database.Get(), migration.AutoMigrateModels()...); err != nil {
		log.Errorw("migration failed", "error", err)
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Infow("migrations completed successfully")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	cfg, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	strategy, err := versioned(cfg, "down")
	if err != nil {
		return err
	}

	log.Infow("running down migrations", "environment", env, "steps", steps)

	if err := strategy.MigrateDown(database.Get(), steps); err != nil {
		log.Errorw("down migration failed", "error", err)
		return fmt.Errorf("down migration failed: %w", err)
	}

	log.Infow("down migration completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("checking migration status", "environment", env)

	manager := migration.NewManager(cfg.Database.Driver)
	info := manager.GetStrategyInfo()

	fmt.Printf("\nMigration Status:\n")
	fmt.Printf("  Environment:     %s\n", env)
	fmt.Printf("  Driver:          %s\n", cfg.Database.Driver)
	fmt.Printf("  Strategy:        %s\n", info["name"])

	strategy, ok := manager.Versioned()
	if !ok {
		fmt.Printf("  Current Version: n/a (schema follows the models)\n")
		return nil
	}

	current, dirty, err := strategy.GetVersion(database.Get())
	if err != nil {
		log.Errorw("failed to get migration version", "error", err)
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	fmt.Printf("  Current Version: %d\n", current)
	fmt.Printf("  Dirty:           %t\n", dirty)
	return nil
}

func runForce(cmd *cobra.Command, args []string) error {
	cfg, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	strategy, err := versioned(cfg, "force")
	if err != nil {
		return err
	}

	if err := strategy.Force(database.Get(), version); err != nil {
		log.Errorw("force migration failed", "error", err)
		return fmt.Errorf("force migration failed: %w", err)
	}

	fmt.Printf("Migration version forced to %d\n", version)
	return nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	_, log, err := bootstrap.Init(env, configPath)
	if err != nil {
		return err
	}

	scriptsPath, err := filepath.Abs(scriptsDir)
	if err != nil {
		return fmt.Errorf("failed to get scripts path: %w", err)
	}

	log.Infow("creating new migration", "name", name)

	upPath, downPath, err := migration.NewGenerator(scriptsPath).CreateMigration(name)
	if err != nil {
		log.Errorw("failed to create migration", "error", err)
		return fmt.Errorf("failed to create migration: %w", err)
	}

	fmt.Printf("Migration '%s' created:\n  %s\n  %s\n", name, upPath, downPath)
	return nil
}
