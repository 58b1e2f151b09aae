// Package storage provides PostgreSQL backed persistence for the club's
// organizational data: members, committees, projects, events, sponsorships,
// and the command audit log.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("storage: not found")

// Storage wraps a pgx connection pool.
type Storage struct {
	pool *pgxpool.Pool
}

// Connect builds the connection pool. The pool connects lazily, so a
// database that is down at startup surfaces as per-query errors rather than
// a boot failure; permission resolution degrades to Guest in the meantime.
func Connect(ctx context.Context, dsn string) (*Storage, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	return &Storage{pool: pool}, nil
}

func (s *Storage) Close() {
	s.pool.Close()
}

// WithTx runs fn inside a transaction, committing on nil and rolling back
// otherwise.
func (s *Storage) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			log.Printf("[WARN] Transaction rollback failed: %v", rbErr)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Raw is an escape hatch for one-off queries that have no repository method.
func (s *Storage) Raw(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return s.pool.Query(ctx, sql, args...)
}
