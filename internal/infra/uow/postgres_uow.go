// Package uow runs repository work inside pgx transactions.
package uow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"dj-booking-engine/internal/infra/repository"
	"dj-booking-engine/internal/pkg/errs"
	"dj-booking-engine/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
	pgErrCodeLockNotAvailable     = "55P03"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool        *pgxpool.Pool
	maxRetries  int
	base        time.Duration
	lockTimeout time.Duration
	logger      *slog.Logger
}

type Option func(*PostgresUoW)

// WithRetries sets how often a write transaction is retried and the first backoff step.
func WithRetries(maxRetries int, base time.Duration) Option {
	return func(u *PostgresUoW) {
		u.maxRetries = maxRetries
		u.base = base
	}
}

// WithLockTimeout bounds how long a write waits on a booking row lock. Zero disables it.
func WithLockTimeout(d time.Duration) Option {
	return func(u *PostgresUoW) { u.lockTimeout = d }
}

func WithLogger(logger *slog.Logger) Option {
	return func(u *PostgresUoW) { u.logger = logger }
}

func NewPostgresUoW(pool *pgxpool.Pool, opts ...Option) shared.UnitOfWork {
	u := &PostgresUoW{
		pool:        pool,
		maxRetries:  3,
		base:        100 * time.Millisecond,
		lockTimeout: 5 * time.Second,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Within runs at READ COMMITTED. Row locks and the slot exclusion constraint serialise
// competing writers; serialization failures, deadlocks and lock timeouts are retried.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	var lastErr error
	for attempt := 0; attempt <= u.maxRetries; attempt++ {
		err := u.attempt(ctx, fn)
		if err == nil {
			return nil
		}
		lastErr = err

		if !isRetryableError(err) {
			return err
		}
		if attempt == u.maxRetries {
			u.logger.Error("transaction failed after max retries",
				"attempts", attempt+1,
				"error", err.Error())
			return errs.Mark(err, errMaxRetriesExceeded)
		}

		wait := calculateBackoff(attempt, u.base)
		u.logger.Warn("retrying transaction",
			"attempt", attempt+1,
			"wait_ms", wait.Milliseconds(),
			"error", err.Error())

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return errs.Mark(lastErr, errMaxRetriesExceeded)
}

// attempt owns one transaction so rollback is deferred per attempt, not per loop.
func (u *PostgresUoW) attempt(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}
	defer u.rollback(ctx, pgxTx)

	if u.lockTimeout > 0 {
		// SET does not take bind parameters
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", u.lockTimeout.Milliseconds())
		if _, err := pgxTx.Exec(ctx, stmt); err != nil {
			return errs.Wrap(err, "failed to set lock timeout")
		}
	}

	if err := fn(ctx, newPgTx(pgxTx)); err != nil {
		return err
	}
	if err := pgxTx.Commit(ctx); err != nil {
		return errs.Mark(err, errTransactionCommit)
	}
	return nil
}

// WithinReadOnly gives fn one REPEATABLE READ snapshot across all its queries.
func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}
	defer u.rollback(ctx, pgxTx)

	if err := fn(ctx, newPgTx(pgxTx)); err != nil {
		return err
	}
	return pgxTx.Commit(ctx)
}

// Reads runs each call as its own implicit transaction on the pool.
func (u *PostgresUoW) Reads() shared.Tx {
	return newPgTx(u.pool)
}

func (u *PostgresUoW) rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		u.logger.Warn("rollback failed", "error", err.Error())
	}
}

// calculateBackoff doubles per attempt and adds up to 20% jitter.
func calculateBackoff(attempt int, base time.Duration) time.Duration {
	wait := time.Duration(1<<attempt) * base
	if jitterRange := int64(wait / 5); jitterRange > 0 {
		wait += time.Duration(rand.Int64N(jitterRange))
	}
	return wait
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected, pgErrCodeLockNotAvailable:
		return true
	default:
		return false
	}
}

// pgTx hands out repositories bound to one pgx.Tx or to the pool.
type pgTx struct {
	dbtx repository.DBTX

	bookings      *repository.BookingRepository
	djs           *repository.DJRepository
	recoveries    *repository.RecoveryRepository
	notifications *repository.NotificationRepository
}

func newPgTx(db repository.DBTX) *pgTx {
	return &pgTx{dbtx: db}
}

func (t *pgTx) Bookings() shared.BookingRepository {
	if t.bookings == nil {
		t.bookings = repository.NewBookingRepository(t.dbtx)
	}
	return t.bookings
}

func (t *pgTx) DJs() shared.DJRepository {
	if t.djs == nil {
		t.djs = repository.NewDJRepository(t.dbtx)
	}
	return t.djs
}

func (t *pgTx) Recoveries() shared.RecoveryRepository {
	if t.recoveries == nil {
		t.recoveries = repository.NewRecoveryRepository(t.dbtx)
	}
	return t.recoveries
}

func (t *pgTx) Notifications() shared.NotificationRepository {
	if t.notifications == nil {
		t.notifications = repository.NewNotificationRepository(t.dbtx)
	}
	return t.notifications
}
