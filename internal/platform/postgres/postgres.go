// Package postgres opens the PostgreSQL pool, applies the embedded schema and
// gives stores a timeout-bounded executor that joins any transaction in ctx.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	dErrors "quorum/pkg/domain-errors"
	"quorum/pkg/platform/tx"
)

const (
	defaultTimeout   = 5 * time.Second
	uniqueViolation  = "23505"
	foreignKeyFailed = "23503"
)

// Config configures Open.
type Config struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	ConnMaxLife  time.Duration
}

// Open connects and pings the database.
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLife > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLife)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// DB is the pool shared by every PostgreSQL store.
type DB struct {
	pool    *sql.DB
	timeout time.Duration
}

// NewDB wraps pool. A zero timeout uses the five second default.
func NewDB(pool *sql.DB, timeout time.Duration) *DB {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &DB{pool: pool, timeout: timeout}
}

// Pool returns the underlying *sql.DB.
func (d *DB) Pool() *sql.DB {
	return d.pool
}

// Scope bounds ctx by the store timeout and returns the executor to use: the
// transaction carried in ctx, or the pool.
func (d *DB) Scope(ctx context.Context) (context.Context, tx.Executor, context.CancelFunc) {
	ctx, cancel := d.bound(ctx)
	return ctx, tx.ExecutorFrom(ctx, d.pool), cancel
}

func (d *DB) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) <= d.timeout {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d.timeout)
}

// RunInTx runs fn inside a transaction carried through ctx. Nested calls join
// the outer transaction.
func (d *DB) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, ok := tx.From(ctx); ok {
		return fn(ctx)
	}

	ctx, cancel := d.bound(ctx)
	defer cancel()

	sqlTx, err := d.pool.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = sqlTx.Rollback()
	}()

	if err := fn(tx.WithTx(ctx, sqlTx)); err != nil {
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// UniqueViolation reports whether err is a unique constraint violation and
// returns the violated constraint name.
func UniqueViolation(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return pqErr.Constraint, true
	}
	return "", false
}

// ForeignKeyViolation reports whether err is a foreign key violation.
func ForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == foreignKeyFailed
}
