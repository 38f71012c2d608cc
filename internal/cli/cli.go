// Package cli implements the command-line surface over the entity managers
// and the data service. It is a thin presentation shim: all data rules live
// below it.
package cli

import (
	"context"
	"fmt"

	"timekeeper/internal/config"
	"timekeeper/internal/database"
	"timekeeper/internal/dataservice"
	"timekeeper/internal/logging"
)

// App wires the configuration, database, repositories and data service for
// one command invocation.
type App struct {
	Cfg  *config.Config
	Repo *database.Repository
	Data *dataservice.Service

	close func() error
}

// NewApp loads config, initializes logging and opens the database.
func NewApp(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logging.Init(cfg.DataDir); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	db, err := database.Open(ctx, cfg.DatabasePath())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	data, err := dataservice.New(db, cfg.ExportsDir, cfg.BackupsDir)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &App{
		Cfg:   cfg,
		Repo:  database.NewRepository(db),
		Data:  data,
		close: db.Close,
	}, nil
}

// Close releases the database handle.
func (a *App) Close() error {
	if a.close == nil {
		return nil
	}
	return a.close()
}
