package uow

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"ec-checkout/internal/infra/repository"
	"ec-checkout/internal/pkg/errs"
	"ec-checkout/internal/usecase"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"

	maxRetries = 3
)

var (
	ErrTransactionBegin   = errs.New("failed to begin transaction")
	ErrTransactionCommit  = errs.New("failed to commit transaction")
	ErrMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUnitOfWork struct {
	pool *pgxpool.Pool
}

func NewPostgresUnitOfWork(pool *pgxpool.Pool) usecase.UnitOfWork {
	return &PostgresUnitOfWork{pool: pool}
}

// Within runs fn in a transaction and retries on serialization failures and
// deadlocks, so fn must be safe to re-execute.
func (u *PostgresUnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx usecase.Tx) error) error {
	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := u.runInTx(ctx, fn)
		if err == nil {
			return nil
		}

		if !isRetryableError(err) {
			return err
		}

		if attempt == maxRetries {
			slog.Error("transaction failed after max retries", "attempts", attempt+1, "error", err)
			return errs.Mark(err, ErrMaxRetriesExceeded)
		}

		waitTime := time.Duration(attempt+1) * 100 * time.Millisecond
		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1, "wait_time", waitTime, "error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return ErrMaxRetriesExceeded
}

func (u *PostgresUnitOfWork) runInTx(ctx context.Context, fn func(ctx context.Context, tx usecase.Tx) error) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return errs.Mark(err, ErrTransactionBegin)
	}

	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
			// Only log rollback errors for uncommitted transactions
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("failed to rollback transaction", "error", rollbackErr)
			}
		}
	}()

	if err := fn(ctx, newPgTx(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return errs.Mark(err, ErrTransactionCommit)
	}

	return nil
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	items  *repository.ItemRepository
	orders *repository.OrderRepository
}

func newPgTx(tx pgx.Tx) *pgTx {
	return &pgTx{
		items:  repository.NewItemRepository(tx),
		orders: repository.NewOrderRepository(tx),
	}
}

func (t *pgTx) Items() usecase.ItemRepository   { return t.items }
func (t *pgTx) Orders() usecase.OrderRepository { return t.orders }
