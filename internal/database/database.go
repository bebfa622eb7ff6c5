// Package database opens the PostgreSQL pool that backs session state.
package database

import (
	"context"
	"fmt"
	"time"

	"farmprice/internal/config"
	"farmprice/internal/metrics"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// MigrateFunc applies the schema to a freshly opened pool.
type MigrateFunc func(ctx context.Context, pool *pgxpool.Pool) error

// Option configures NewPool.
type Option func(*options)

type options struct {
	migrate MigrateFunc
	metrics *metrics.Metrics
}

// WithMigration runs migrate once the database answers a ping. The pool is
// closed again if it fails.
func WithMigration(migrate MigrateFunc) Option {
	return func(o *options) {
		o.migrate = migrate
	}
}

// WithMetrics exports the pool's connection statistics through m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// NewPool opens the session store pool, verifies it and applies the
// configured options.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger, opts ...Option) (*pgxpool.Pool, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	logger = logger.With().Str("component", "session-store-db").Logger()

	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// Session reads are short; keep idle connections around only briefly.
	poolConfig.MaxConns = int32(cfg.MaxConnections)
	poolConfig.MinConns = int32(cfg.MinConnections)
	poolConfig.MaxConnLifetime = time.Duration(cfg.MaxConnLifetime) * time.Second
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 30 * time.Second
	poolConfig.ConnConfig.RuntimeParams["application_name"] = "farmprice"

	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Int32("max_connections", poolConfig.MaxConns).
		Bool("migrate", o.migrate != nil).
		Msg("opening session store")

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if o.migrate != nil {
		if err := o.migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to migrate session store: %w", err)
		}
		logger.Info().Msg("session store schema applied")
	}

	if reg := o.metrics.Registry(); reg != nil {
		if err := reg.Register(NewPoolCollector(o.metrics.Namespace(), pool)); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to register pool metrics: %w", err)
		}
	}

	logger.Info().Msg("session store ready")

	return pool, nil
}
