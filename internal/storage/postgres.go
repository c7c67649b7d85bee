// Package storage is the record store behind the portal: penalties upserted
// during bulk ingestion, plus the customer/schedule/payment records that the
// external payment layer reads and writes.
package storage

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	apierrors "pcnportal/internal/errors"
)

// ErrNotFound is returned when an update or lookup targets a record that
// does not exist.
var ErrNotFound = errors.New("record not found")

// DB wraps a pgx connection pool shared by the repositories.
type DB struct {
	Pool   *pgxpool.Pool
	logger *slog.Logger
}

// Connect opens a pooled connection and verifies it with a ping.
func Connect(ctx context.Context, dsn string, maxConns int32, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, apierrors.NewStorageError("failed to parse database dsn", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, apierrors.NewStorageError("failed to create connection pool", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, apierrors.NewStorageError("failed to ping database", err)
	}

	logger.InfoContext(ctx, "database connected",
		slog.Int("max_conns", int(cfg.MaxConns)))

	return &DB{Pool: pool, logger: logger.With(slog.String("component", "storage"))}, nil
}

// Ping verifies the pool can reach the database.
func (db *DB) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

// Close releases the pool.
func (db *DB) Close() {
	db.Pool.Close()
}
