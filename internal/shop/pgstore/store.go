// Package pgstore is the PostgreSQL shop.Store built on pgx. The schema lives
// in internal/platform/db/migrations.
package pgstore

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shop24/shop24/internal/platform/db"
	"github.com/shop24/shop24/internal/shop"
)

type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store reads through the pool and writes inside RepeatableRead transactions.
type Store struct {
	reader
	pool *pgxpool.Pool
}

var _ shop.Store = (*Store)(nil)

// New wraps an open pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{reader: reader{db: pool}, pool: pool}
}

// WithTx runs fn in a transaction that commits only when fn returns nil.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, tx shop.Tx) error) error {
	return db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(ctx, &writer{reader: reader{db: tx}})
	})
}
