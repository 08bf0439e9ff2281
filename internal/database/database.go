// Package database opens the Postgres pool behind the products backend and
// owns the products schema.
package database

import (
	"context"
	"fmt"
	"time"

	"course-market/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const (
	applicationName = "course-market-api"
	connectTimeout  = 5 * time.Second
)

// Schema is the products table served by the backend. Price keeps whatever
// precision the client sends so a positive price is never rounded to zero.
const Schema = `
	CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		price NUMERIC NOT NULL CHECK (price > 0),
		image TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		instructor TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT '',
		rating TEXT NOT NULL DEFAULT '',
		avatar TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp()
	);
	CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at);
`

// Open connects to the products database and makes sure the schema exists.
// The returned pool is ready to serve the repository.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*pgxpool.Pool, error) {
	log := logger.With().Str("component", "database").Logger()

	poolConfig, err := newPoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Int32("max_conns", poolConfig.MaxConns).
		Msg("connecting to products database")

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach products database: %w", err)
	}

	if err := EnsureSchema(ctx, pool, log); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

// newPoolConfig tags every connection with the backend's name and bounds dialing,
// so a dead database fails startup instead of hanging it.
func newPoolConfig(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConnections)
	poolConfig.MinConns = int32(cfg.MinConnections)
	poolConfig.MaxConnLifetime = time.Duration(cfg.MaxConnLifetime) * time.Second
	poolConfig.ConnConfig.ConnectTimeout = connectTimeout
	poolConfig.ConnConfig.RuntimeParams["application_name"] = applicationName
	poolConfig.ConnConfig.RuntimeParams["timezone"] = "UTC"

	return poolConfig, nil
}

// EnsureSchema creates the products table if it does not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	logger.Debug().Msg("products schema ensured")
	return nil
}
