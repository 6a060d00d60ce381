// Package main is the ecommerce-api command: the HTTP server plus the
// migrate and seed maintenance commands.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ecommerce-system/ecommerce-api/internal/config"
	"github.com/ecommerce-system/ecommerce-api/internal/platform/logger"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Running the root command without a
// subcommand starts the server.
func newRootCmd() *cobra.Command {
	serve := newServeCmd()

	root := &cobra.Command{
		Use:   "ecommerce-api",
		Short: "E-commerce catalog and user API",
		Long: `ecommerce-api serves the user and product catalog API.

Configuration is read from config.yaml (in . or ./config) and from
ECOM_-prefixed environment variables, e.g. ECOM_DATABASE_URL,
ECOM_AUTH_JWT_SECRET or ECOM_AUTH_JWKS_URL.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}
	root.Flags().AddFlagSet(serve.Flags())

	root.AddCommand(serve, newMigrateCmd(), newSeedCmd())
	return root
}

// bootstrap loads configuration and installs the JSON logger.
func bootstrap() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.Bool("jwks", cfg.Auth.JWKSURL != ""),
		slog.Bool("cache_enabled", cfg.Cache.Enabled))

	return cfg, l, nil
}
