package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/paramount/restobid/internal/config"
	"github.com/paramount/restobid/internal/lineitems"
	"github.com/paramount/restobid/internal/logger"
	"github.com/paramount/restobid/internal/refdata"
	"github.com/paramount/restobid/internal/store"
)

// App holds the shared state every subcommand needs: configuration, the
// loaded reference dataset, and the logger. Commands receive it by pointer
// so tests can substitute pieces.
type App struct {
	Config  *config.Config
	Dataset *refdata.Dataset
	Logger  logger.Logger
}

// NewApp loads configuration and the embedded reference dataset, verifying
// the catalog covers every emittable code. A verification miss is a
// configuration defect and aborts startup.
func NewApp(configPath string, logOut io.Writer) (*App, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadFromDir(".")
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	ds, err := refdata.Load()
	if err != nil {
		return nil, fmt.Errorf("load reference dataset: %w", err)
	}
	if err := lineitems.VerifyCatalog(ds); err != nil {
		return nil, err
	}

	return &App{
		Config:  cfg,
		Dataset: ds,
		Logger:  logger.NewConsoleLogger(logOut, cfg.LogLevel),
	}, nil
}

// OpenStore opens the project store in the configured data directory. The
// caller must Close it; the store holds the single-instance lock.
func (a *App) OpenStore() (*store.Store, error) {
	return store.Open(a.Config.DataDir)
}

// contextForStore returns the context store operations run under. Commands
// are short-lived, so a background context suffices.
func contextForStore() context.Context {
	return context.Background()
}
