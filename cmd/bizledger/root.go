package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/SscSPs/biz_management_app/internal/platform/config"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "bizledger",
	Short: "BizLedger backend",
	Long: `BizLedger serves the document, installment, ledger and registry API
of a small business on top of PostgreSQL.

Configuration is read from the environment (and an optional .env file):
  DATABASE_URL, PORT, JWT_SECRET, JWT_ISSUER, RATE_LIMIT, CORS_ALLOWED_ORIGINS,
  MIGRATIONS_PATH, CONFLICT_RETRY_ATTEMPTS, LOG_LEVEL, IS_PRODUCTION`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command execution failed", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

// setup loads the configuration and installs the JSON logger as the default.
func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	return cfg, logger, nil
}
