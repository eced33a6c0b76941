package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/afero"

	"github.com/ThinkWithTheo/external-tracking-sub000/internal/config"
	"github.com/ThinkWithTheo/external-tracking-sub000/internal/logstore"
	"github.com/ThinkWithTheo/external-tracking-sub000/internal/tracker"
)

// buildStore selects the change-log backend from configuration. The
// rest of the system only ever sees the logstore.Store contract.
func buildStore(ctx context.Context, cfg *config.Config) (logstore.Store, error) {
	key := cfg.LogKey()

	switch cfg.Store.Backend {
	case config.BackendFile:
		return logstore.NewFileStore(afero.NewOsFs(), cfg.Store.Dir, key), nil
	case config.BackendSQLite:
		return logstore.NewSQLiteStore(cfg.Store.DBPath, key)
	case config.BackendPostgres:
		if cfg.Store.PostgresURL == "" {
			return nil, fmt.Errorf("postgres backend requires TRACKING_POSTGRES_URL")
		}
		pool, err := pgxpool.New(ctx, cfg.Store.PostgresURL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return logstore.NewPostgresStore(ctx, pool, key)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func buildTrackerClient(cfg *config.Config) (*tracker.Client, error) {
	if cfg.Tracker.APIToken == "" {
		return nil, fmt.Errorf("task service API token not configured (TRACKING_API_TOKEN)")
	}
	if cfg.Tracker.ListID == "" {
		return nil, fmt.Errorf("task list id not configured (TRACKING_LIST_ID)")
	}

	timeout := time.Duration(cfg.Tracker.TimeoutSeconds) * time.Second
	return tracker.NewClient(cfg.Tracker.BaseURL, cfg.Tracker.APIToken, cfg.Tracker.ListID, timeout), nil
}
