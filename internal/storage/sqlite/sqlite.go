// Package sqlitestorage keeps run records in a SQLite file through the GORM
// backend. An empty path selects an in-memory database.
package sqlitestorage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sciencekit/sciencekit/internal/config"
	"github.com/sciencekit/sciencekit/internal/database"
	gormstorage "github.com/sciencekit/sciencekit/internal/storage/gorm"
)

// Backend wraps the GORM backend for SQLite-specific behavior.
type Backend struct {
	*gormstorage.Backend
	path string
	log  *slog.Logger
}

// New creates a SQLite backend. The database is opened by Init.
func New(cfg config.SQLiteConfig, log *slog.Logger) *Backend {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Backend{path: cfg.Path, log: log}
}

// Init opens the database file, creating its directory, and migrates it.
func (b *Backend) Init() error {
	if b.path != "" {
		if err := os.MkdirAll(filepath.Dir(b.path), 0o755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := database.GetSqliteDB(b.path)
	if err != nil {
		return fmt.Errorf("failed to open SQLite DB: %w", err)
	}

	b.Backend = gormstorage.New(gormstorage.Dependencies{DB: db, Log: b.log})
	if err := b.Backend.Init(); err != nil {
		database.Close(db)
		return err
	}

	b.log.Debug("Using local SQLite DB", "path", b.path)
	return nil
}

// Close closes the database if Init opened it.
func (b *Backend) Close() error {
	if b.Backend == nil {
		return nil
	}
	return b.Backend.Close()
}
