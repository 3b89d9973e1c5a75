// Package database owns the pgx-backed connection pool that judgement
// records are persisted through.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/JaimeStill/vouch/pkg/lifecycle"
)

// System exposes the pool, a liveness check, and lifecycle registration.
type System interface {
	Connection() *sql.DB
	Ping(ctx context.Context) error
	Start(lc *lifecycle.Coordinator) error
}

type pool struct {
	db      *sql.DB
	logger  *slog.Logger
	timeout time.Duration
}

// New configures the pool without dialing. The first connection is made
// by the startup hook registered in Start.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	db, err := sql.Open("pgx", cfg.Dsn())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	return &pool{
		db:      db,
		logger:  logger.With("system", "database", "host", cfg.Host, "name", cfg.Name),
		timeout: cfg.ConnTimeoutDuration(),
	}, nil
}

func (p *pool) Connection() *sql.DB {
	return p.db
}

// Ping checks the server within the configured connection timeout.
func (p *pool) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrNotReady, err)
	}
	return nil
}

func (p *pool) Start(lc *lifecycle.Coordinator) error {
	lc.OnStartup(func() error {
		start := time.Now()
		if err := p.Ping(lc.Context()); err != nil {
			p.logger.Error("database unreachable", "error", err)
			return err
		}
		p.logger.Info("database connected", "elapsed", time.Since(start))
		return nil
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()

		stats := p.db.Stats()
		if err := p.db.Close(); err != nil {
			p.logger.Error("database close failed", "error", err)
			return
		}
		p.logger.Info("database closed", "open_connections", stats.OpenConnections)
	})

	return nil
}
