package app

import (
	"fmt"
	"log/slog"

	"github.com/sciencekit/sciencekit/internal/config"
	"github.com/sciencekit/sciencekit/internal/storage"
	"github.com/sciencekit/sciencekit/internal/storage/memory"
	pgstorage "github.com/sciencekit/sciencekit/internal/storage/postgres"
	sqlitestorage "github.com/sciencekit/sciencekit/internal/storage/sqlite"
)

// NewStorageBackend builds the backend selected by cfg.Type. The memory
// backend names its export file after program.
func NewStorageBackend(cfg config.StorageConfig, program string, log *slog.Logger) (storage.Backend, error) {
	switch cfg.Type {
	case "", "none":
		return storage.Noop{}, nil
	case "memory":
		return memory.New(cfg.Memory, program), nil
	case "sqlite":
		return sqlitestorage.New(cfg.SQLite, log), nil
	case "postgres":
		return pgstorage.New(cfg.Postgres, log), nil
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}
