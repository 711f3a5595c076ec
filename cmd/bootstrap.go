package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"watchlist/core/config"
	"watchlist/core/database"
	"watchlist/core/logger"
	"watchlist/core/storage"
	"watchlist/feature/backup"
	"watchlist/feature/watchlist"
	"watchlist/feature/watchlist/store"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// services bundles everything a command needs.
type services struct {
	cfg       *config.Config
	log       *zap.Logger
	db        *gorm.DB
	watchlist *watchlist.Service
	backup    *backup.Service
}

// loadServices loads configuration, opens the store and builds the services.
// CLI commands pass console=true to log human readable lines instead of the
// configured format.
func loadServices(ctx context.Context, console bool) (*services, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var l *zap.Logger
	if console {
		l = logger.NewConsole(cfg.Log.Level)
	} else if l, err = logger.New(&cfg.Log); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database connection required: %w", err)
	}

	st := store.New(db)
	if err := st.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to prepare schema: %w", err)
	}

	backend, err := storage.NewBackend(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage backend: %w", err)
	}

	wl := watchlist.NewService(st, backend, l, watchlist.Options{
		AppVersion: Version,
		DeviceName: cfg.Snapshot.DeviceName,
	})

	return &services{
		cfg:       cfg,
		log:       l,
		db:        db,
		watchlist: wl,
		backup:    backup.NewService(wl, backend, cfg.Backup, l),
	}, nil
}

// Close releases the database connection and flushes the logger.
func (s *services) Close() {
	if sqlDB, err := s.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = s.log.Sync()
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
