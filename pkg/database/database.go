// Package database manages the PostgreSQL connection pool and its lifecycle.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync/atomic"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/JaimeStill/docmatrix/pkg/lifecycle"
)

// System owns the shared *sql.DB. The pool is created by New; the startup
// hook registered by Start verifies connectivity and the shutdown hook closes it.
type System interface {
	Connection() *sql.DB
	Start(lc *lifecycle.Coordinator) error
	// Ready returns ErrNotReady until the startup ping succeeds, then pings the pool.
	Ready(ctx context.Context) error
}

type database struct {
	cfg       *Config
	db        *sql.DB
	logger    *slog.Logger
	connected atomic.Bool
}

// New opens the connection pool described by cfg. No connection is made until first use.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	db, err := sql.Open("pgx", cfg.Dsn())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	return &database{
		cfg:    cfg,
		db:     db,
		logger: logger.With("system", "database"),
	}, nil
}

func (d *database) Connection() *sql.DB {
	return d.db
}

func (d *database) Ready(ctx context.Context) error {
	if !d.connected.Load() {
		return ErrNotReady
	}
	return d.db.PingContext(ctx)
}

func (d *database) Start(lc *lifecycle.Coordinator) error {
	d.logger.Info("starting database system", "host", d.cfg.Host, "name", d.cfg.Name)

	lc.OnStartup(func() {
		ctx, cancel := context.WithTimeout(lc.Context(), d.cfg.ConnTimeoutDuration())
		defer cancel()

		if err := d.db.PingContext(ctx); err != nil {
			d.logger.Error("database ping failed", "error", err)
			return
		}
		d.connected.Store(true)
		d.logger.Info("database connection established")
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		d.logger.Info("closing database connection")
		if err := d.db.Close(); err != nil {
			d.logger.Error("database close failed", "error", err)
		}
	})

	return nil
}
