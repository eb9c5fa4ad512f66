// Package app wires storage, the set log and favorites together once per process.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/claude/liftlog/internal/config"
	"github.com/claude/liftlog/internal/favorites"
	"github.com/claude/liftlog/internal/kv"
	"github.com/claude/liftlog/internal/metrics"
	"github.com/claude/liftlog/internal/workoutlog"

	"github.com/prometheus/client_golang/prometheus"
)

// App holds the long-lived instances shared by the adapters.
type App struct {
	Config    *config.Config
	Log       *slog.Logger
	Registry  *prometheus.Registry
	Metrics   *metrics.Manager
	Store     kv.Store
	Sets      *workoutlog.Store
	Favorites *favorites.Store

	closer io.Closer
}

// New opens the configured storage and builds the stores on top of it.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	reg := metrics.NewRegistry()
	m := metrics.NewManager(reg)

	store, closer, err := kv.Open(ctx, cfg.Storage, m, log)
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}

	return &App{
		Config:    cfg,
		Log:       log,
		Registry:  reg,
		Metrics:   m,
		Store:     store,
		Sets:      workoutlog.New(store, log.With("component", "workoutlog"), workoutlog.WithLocation(loc)),
		Favorites: favorites.New(store, log.With("component", "favorites")),
		closer:    closer,
	}, nil
}

// Reset deletes every logged set and favorite. Both collections are cleared
// even if the first one fails.
func (a *App) Reset(ctx context.Context) error {
	var errs []error
	if err := a.Sets.ClearAll(ctx); err != nil {
		errs = append(errs, fmt.Errorf("clearing workout sets: %w", err))
	}
	if err := a.Favorites.ClearAll(ctx); err != nil {
		errs = append(errs, fmt.Errorf("clearing favorites: %w", err))
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	a.Log.Info("all data cleared")
	return nil
}

// Close releases the storage backend.
func (a *App) Close() error {
	return a.closer.Close()
}
