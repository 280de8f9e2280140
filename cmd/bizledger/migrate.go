package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/SscSPs/biz_management_app/pkg/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(database.MigrateUp)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back all migrations",
	Example: `  # Drop the whole schema of a development database
  bizledger migrate down`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(database.MigrateDown)
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(direction database.MigrationDirection) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	if direction == database.MigrateDown && cfg.IsProduction {
		return fmt.Errorf("refusing to roll back migrations in production")
	}

	changed, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, direction)
	if err != nil {
		return err
	}
	logger.Info("Migrations finished", slog.String("direction", string(direction)), slog.Bool("changed", changed))
	return nil
}
