package main

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/RouteAudit/internal/config"
	"github.com/JonMunkholm/RouteAudit/internal/store"
)

// connectDB opens the run history pool and makes sure its schema exists.
func connectDB(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	if !cfg.Database.Enabled() {
		return nil, withCode(exitUsage, store.ErrHistoryDisabled)
	}

	pool, err := store.Connect(ctx, store.PoolOptions{
		URL:             cfg.Database.URL,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
	})
	if err != nil {
		return nil, withCode(exitDB, err)
	}

	if err := store.New(pool).Migrate(ctx); err != nil {
		pool.Close()
		return nil, withCode(exitDB, err)
	}

	slog.Info("connected to database", "name", store.DatabaseName(cfg.Database.URL))
	return pool, nil
}

// openStore connects and returns the run store with its close function.
func openStore(ctx context.Context, a *app) (*store.Store, func(), error) {
	pool, err := connectDB(ctx, a.cfg)
	if err != nil {
		return nil, nil, err
	}
	return store.New(pool), pool.Close, nil
}
