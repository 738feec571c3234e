package main

import (
	"os"

	"github.com/spf13/cobra"

	"solarops/internal/interfaces/cli/migrate"
	"solarops/internal/interfaces/cli/seed"
	"solarops/internal/interfaces/cli/server"
	"solarops/internal/interfaces/cli/token"
	"solarops/internal/shared/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "solarops",
		Short:   "SolarOps - field service back office for solar and battery installations",
		Long:    `SolarOps manages service agreements, visits and inspection checklists for solar and battery installations. It ships the HTTP server, migration tools and reference data seeding.`,
		Version: version.Current,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		seed.NewCommand(),
		token.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
