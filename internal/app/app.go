// Package app wires configuration into a ready planner: storage, backups and the service.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/benvon/quest-planner/internal/backup"
	"github.com/benvon/quest-planner/internal/config"
	"github.com/benvon/quest-planner/internal/planner"
	"github.com/benvon/quest-planner/internal/storage"
)

// App holds the long-lived components shared by the server and the CLI
type App struct {
	Config  *config.Config
	Store   storage.Store
	Backups *backup.Manager
	Planner *planner.Service
	Logger  *zap.Logger
}

// StorageOptions maps configuration onto storage.Options
func StorageOptions(cfg *config.Config) storage.Options {
	return storage.Options{
		Backend:     cfg.StorageBackend,
		SQLitePath:  cfg.SQLitePath,
		DatabaseURL: cfg.DatabaseURL,
		RedisURL:    cfg.RedisURL,
	}
}

// Open connects the configured storage backend and loads the planner state
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	store, err := storage.Open(ctx, StorageOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.StorageBackend, err)
	}
	logger.Info("storage_opened", zap.String("backend", cfg.StorageBackend))

	backups := backup.NewManager(store, cfg.BackupRetention, logger.Named("backup"))
	svc, err := planner.New(ctx, planner.Options{
		Store:         store,
		Backups:       backups,
		Location:      cfg.Location,
		Logger:        logger.Named("planner"),
		LevelUpNotice: cfg.LevelUpNotice,
	})
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to load planner state: %w", err)
	}

	return &App{Config: cfg, Store: store, Backups: backups, Planner: svc, Logger: logger}, nil
}

// Close releases the storage backend
func (a *App) Close() error {
	return a.Store.Close()
}
