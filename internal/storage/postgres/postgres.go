// Package postgres keeps run records in PostgreSQL through the GORM backend.
package postgres

import (
	"fmt"
	"log/slog"

	"github.com/sciencekit/sciencekit/internal/config"
	"github.com/sciencekit/sciencekit/internal/database"
	gormstorage "github.com/sciencekit/sciencekit/internal/storage/gorm"
)

// Backend wraps the GORM backend with a Postgres connection.
type Backend struct {
	*gormstorage.Backend
	cfg config.PostgresConfig
	log *slog.Logger
}

// New creates a Postgres backend. The connection is opened by Init.
func New(cfg config.PostgresConfig, log *slog.Logger) *Backend {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Backend{cfg: cfg, log: log}
}

// Init connects, pings and migrates.
func (b *Backend) Init() error {
	db, err := database.GetPostgresDB(b.cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres at %s:%s: %w", b.cfg.Host, b.cfg.Port, err)
	}

	b.Backend = gormstorage.New(gormstorage.Dependencies{DB: db, Log: b.log})
	if err := b.Backend.Init(); err != nil {
		database.Close(db)
		return err
	}

	b.log.Info("Connected to database", "host", b.cfg.Host, "database", b.cfg.Database)
	return nil
}

// Close closes the connection if Init opened it.
func (b *Backend) Close() error {
	if b.Backend == nil {
		return nil
	}
	return b.Backend.Close()
}
