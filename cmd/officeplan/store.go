package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/officeplan/internal/config"
	"github.com/mmynk/officeplan/internal/storage"
	"github.com/mmynk/officeplan/internal/storage/postgres"
	"github.com/mmynk/officeplan/internal/storage/sqlite"
)

// openStore opens the backend selected by DB_DRIVER.
func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		store, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		slog.Info("Storage initialized", "driver", cfg.DBDriver)
		return store, nil
	case config.DriverSQLite:
		store, err := sqlite.New(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		slog.Info("Storage initialized", "driver", cfg.DBDriver, "database", cfg.DBPath)
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}
