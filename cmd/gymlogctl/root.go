package main

import (
	"context"
	"fmt"

	"github.com/2beens/gymlog/internal/config"
	"github.com/2beens/gymlog/internal/db"
	"github.com/2beens/gymlog/internal/logging"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	env        string
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "gymlogctl",
		Short:         "Admin tooling for the gymlog service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(logging.LoggerSetupParams{
				LogLevel: opts.logLevel,
			})
		},
	}

	root.PersistentFlags().StringVar(&opts.env, "env", "development", "environment [prod | production | dev | development]")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "./config.toml", "path for the TOML config file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level")

	root.AddCommand(
		newMigrateCmd(opts),
		newHashPasswordCmd(),
		newUserCmd(opts),
		newCatalogCmd(opts),
	)

	return root
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	return config.Load(o.env, o.configPath)
}

func dbParams(cfg *config.Config) db.NewDBPoolParams {
	return db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     cfg.PostgresUser,
		DBPassword: cfg.PostgresPassword,
		MaxConns:   2,
	}
}

func (o *rootOptions) openDB(ctx context.Context) (*pgxpool.Pool, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	pool, err := db.NewDBPool(ctx, dbParams(cfg))
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}
	return pool, nil
}
