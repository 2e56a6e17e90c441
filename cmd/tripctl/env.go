package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"

	"github.com/josh-kwaku/travelmate/internal/config"
	"github.com/josh-kwaku/travelmate/internal/logging"
	"github.com/josh-kwaku/travelmate/internal/repository"
)

var commands = []subcommands.Command{
	&migrateCmd{},
	&settleCmd{},
	&ratesCmd{},
}

// setup loads .env and the environment, then opens the database.
func setup(ctx context.Context) (*config.Config, *sql.DB, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, nil, fmt.Errorf("setup: load .env: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("setup: %w", err)
	}

	logging.Init("tripctl", cfg.LogLevel, cfg.AppEnv)

	db, err := repository.NewPostgresDB(ctx, cfg.DatabaseURL, repository.PoolConfig{
		MaxOpenConns:     2,
		MaxIdleConns:     1,
		ConnMaxLifetimeS: cfg.DBConnMaxLifetimeS,
		ConnMaxIdleTimeS: cfg.DBConnMaxIdleTimeS,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("setup: %w", err)
	}
	return cfg, db, nil
}
