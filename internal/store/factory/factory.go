// Package factory wires a concrete store.Store from configuration.
package factory

import (
	"fmt"

	"github.com/moodtrack/moodtrack/internal/config"
	"github.com/moodtrack/moodtrack/internal/store"
	"github.com/moodtrack/moodtrack/internal/store/memory"
	"github.com/moodtrack/moodtrack/internal/store/postgres"
	"github.com/moodtrack/moodtrack/internal/store/sqlite"
)

// NewStore builds the store selected by cfg.DBDriver.
func NewStore(cfg *config.Config) (store.Store, error) {
	switch cfg.DBDriver {
	case "postgres":
		db, err := postgres.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return postgres.NewWithDB(db), nil
	case "sqlite":
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return sqlite.NewWithDB(db), nil
	case "memory":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER: %s", cfg.DBDriver)
	}
}
