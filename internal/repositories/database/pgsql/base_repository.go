package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/coop_savings_app/internal/apperrors"
	portsrepo "github.com/SscSPs/coop_savings_app/internal/core/ports/repositories"
	"github.com/SscSPs/coop_savings_app/internal/middleware"
	"github.com/SscSPs/coop_savings_app/internal/platform/metrics"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

type txKey struct{}

type commitHooksKey struct{}

// commitHooks collects callbacks registered during one transaction attempt.
type commitHooks struct {
	fns []func()
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// conn returns the transaction carried by ctx, or the pool when there is none.
func (r *BaseRepository) conn(ctx context.Context) querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return r.Pool
}

// txConn returns the transaction carried by ctx. Row-locking reads need one.
func (r *BaseRepository) txConn(ctx context.Context) (pgx.Tx, error) {
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	if !ok {
		return nil, apperrors.Internal("locking read outside a transaction", nil)
	}
	return tx, nil
}

// PgxTxManager implements portsrepo.TransactionManager on a pgx pool.
type PgxTxManager struct {
	BaseRepository
	maxRetries int
	metrics    *metrics.Metrics
}

func newPgxTxManager(pool *pgxpool.Pool, maxRetries int, m *metrics.Metrics) *PgxTxManager {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &PgxTxManager{BaseRepository: BaseRepository{Pool: pool}, maxRetries: maxRetries, metrics: m}
}

var _ portsrepo.TransactionManager = (*PgxTxManager)(nil)

// WithinTransaction runs fn in a transaction. Serialization failures and
// deadlocks are retried up to maxRetries times with a fresh transaction.
func (m *PgxTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	var err error
	for attempt := 0; ; attempt++ {
		err = m.runOnce(ctx, fn)
		if err == nil || !isRetryable(err) || attempt >= m.maxRetries || ctx.Err() != nil {
			return err
		}
		m.metrics.ObserveTxRetry()
		middleware.GetLoggerFromCtx(ctx).WarnContext(ctx, "Retrying transaction after conflict", "attempt", attempt+1, "error", err)
	}
}

func (m *PgxTxManager) runOnce(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.Pool.Begin(ctx)
	if err != nil {
		return apperrors.Internal("failed to begin transaction", err)
	}
	// Once begun, the outcome must not depend on the caller going away.
	detached := context.WithoutCancel(ctx)

	hooks := &commitHooks{}
	txCtx := context.WithValue(context.WithValue(ctx, txKey{}, tx), commitHooksKey{}, hooks)
	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(detached); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			middleware.GetLoggerFromCtx(ctx).ErrorContext(ctx, "Failed to roll back transaction", "error", rbErr)
		}
		return err
	}
	if err := tx.Commit(detached); err != nil {
		return apperrors.Internal("failed to commit transaction", err)
	}
	for _, hook := range hooks.fns {
		hook()
	}
	return nil
}

// AfterCommit implements portsrepo.TransactionManager.
func (m *PgxTxManager) AfterCommit(ctx context.Context, fn func()) {
	hooks, ok := ctx.Value(commitHooksKey{}).(*commitHooks)
	if !ok {
		fn()
		return
	}
	hooks.fns = append(hooks.fns, fn)
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgSerializationFailure || pgErr.Code == pgDeadlockDetected
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// wrapDBError maps a storage failure to an internal error. The cause stays
// reachable through errors.As, so retryable conflicts still surface.
func wrapDBError(err error, format string, args ...any) error {
	return apperrors.Internal(fmt.Sprintf(format, args...), err)
}
