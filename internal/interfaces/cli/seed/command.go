package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"solarops/internal/application/checklist/usecases"
	"solarops/internal/infrastructure/database"
	"solarops/internal/infrastructure/persistence/seeds"
	"solarops/internal/infrastructure/repository"
	"solarops/internal/interfaces/cli/bootstrap"
	"solarops/internal/shared/db"
)

const seedTimeout = time.Minute

var (
	env        string
	configPath string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load reference data",
		Long:  `Load built-in reference data into the database. Existing rows are left untouched.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(newTemplatesCommand())

	return cmd
}

func newTemplatesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "Install the built-in checklist templates",
		Long:  `Install the built-in checklist templates. Templates whose name already exists are skipped.`,
		RunE:  runTemplates,
	}
}

func runTemplates(cmd *cobra.Command, args []string) error {
	_, log, err := bootstrap.InitWithDatabase(env, configPath)
	if err != nil {
		return err
	}
	defer database.Close()

	gdb := database.Get()
	uc := usecases.NewSeedTemplatesUseCase(
		repository.NewChecklistTemplateRepository(gdb, log),
		seeds.NewBuiltinTemplateSource(),
		db.NewTransactionManager(gdb),
		log,
	)

	ctx, cancel := context.WithTimeout(cmd.Context(), seedTimeout)
	defer cancel()

	result, err := uc.Execute(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed templates: %w", err)
	}

	for _, name := range result.Created {
		fmt.Printf("  created  %s\n", name)
	}
	for _, name := range result.Skipped {
		fmt.Printf("  skipped  %s\n", name)
	}
	fmt.Printf("%d created, %d skipped\n", len(result.Created), len(result.Skipped))
	return nil
}
