package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/coop_savings_app/internal/platform/config"
	"github.com/SscSPs/coop_savings_app/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
)

// newLogger builds the JSON logger every command writes through.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return logger
}

// loadRuntime reads the configuration and sets up logging.
func loadRuntime() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, newLogger(cfg.LogLevel), nil
}

// openPool connects to Postgres and, when ENABLE_DB_CHECK is set, refuses a
// schema left dirty by a failed migration.
func openPool(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, logger)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if !cfg.EnableDBCheck {
		return pool, nil
	}

	version, dirty, err := database.MigrationVersion(cfg.DatabaseURL, logger)
	if err != nil {
		database.ClosePgxPool(pool, logger)
		return nil, fmt.Errorf("checking schema version: %w", err)
	}
	if dirty {
		database.ClosePgxPool(pool, logger)
		return nil, fmt.Errorf("schema version %d is dirty, fix it with the migrate command", version)
	}
	logger.Info("Schema version checked", slog.Uint64("version", uint64(version)))
	return pool, nil
}
