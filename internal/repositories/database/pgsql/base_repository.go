package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chonlathan-cloud/ProjectPRT/internal/apperrors"
	portsrepo "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/repositories"
)

// PostgreSQL error codes the repositories translate.
const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgLockNotAvailable     = "55P03"
	pgDeadlockDetected     = "40P01"
	pgSerializationFailure = "40001"
	pgQueryCanceled        = "57014"
)

const caseVoucherConstraint = "uq_documents_case_voucher"

// querier is the subset of pgx.Tx the repositories use.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// UnitOfWork runs repository work inside a single PostgreSQL transaction.
type UnitOfWork struct {
	Pool        *pgxpool.Pool
	LockTimeout time.Duration
}

// NewUnitOfWork creates a UnitOfWork. A non-positive lockTimeout leaves the
// server default in place.
func NewUnitOfWork(pool *pgxpool.Pool, lockTimeout time.Duration) *UnitOfWork {
	return &UnitOfWork{Pool: pool, LockTimeout: lockTimeout}
}

// Ensure UnitOfWork implements the portsrepo.UnitOfWork interface
var _ portsrepo.UnitOfWork = (*UnitOfWork)(nil)

// WithinTx begins a transaction, binds every repository to it and runs fn.
func (u *UnitOfWork) WithinTx(ctx context.Context, fn portsrepo.TxFunc) (err error) {
	tx, err := u.Pool.Begin(ctx)
	if err != nil {
		return mapError(err, "failed to begin transaction")
	}
	// Rollback after a successful commit returns ErrTxClosed.
	defer func() {
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			slog.Error("Failed to roll back transaction", slog.String("error", rbErr.Error()))
		}
	}()

	if u.LockTimeout > 0 {
		timeout := fmt.Sprintf("%dms", u.LockTimeout.Milliseconds())
		if _, err = tx.Exec(ctx, "SELECT set_config('lock_timeout', $1, true)", timeout); err != nil {
			return mapError(err, "failed to set lock timeout")
		}
	}

	if err = fn(ctx, newRepositories(tx)); err != nil {
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			err = apperrors.NewInternalError("unit of work failed", err)
		}
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return mapError(err, "failed to commit transaction")
	}
	return nil
}

// mapError translates driver errors into application errors.
func mapError(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFoundError(message)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgLockNotAvailable, pgDeadlockDetected, pgSerializationFailure:
			return apperrors.New(apperrors.ErrConflict, apperrors.CodeLockTimeout,
				"timed out waiting for a lock, retry the request", err)
		case pgUniqueViolation:
			if pgErr.ConstraintName == caseVoucherConstraint {
				return apperrors.New(apperrors.ErrConflict, apperrors.CodeVoucherExists,
					"a voucher already exists for this case", err)
			}
			return apperrors.New(apperrors.ErrConflict, apperrors.CodeDuplicate, message, err).
				WithDetails(map[string]any{"constraint": pgErr.ConstraintName})
		case pgForeignKeyViolation:
			return apperrors.New(apperrors.ErrValidation, apperrors.CodeValidation, message, err).
				WithDetails(map[string]any{"constraint": pgErr.ConstraintName})
		case pgQueryCanceled:
			return apperrors.New(apperrors.ErrConflict, apperrors.CodeLockTimeout, "statement was cancelled", err)
		}
	}
	return apperrors.NewInternalError(message, err)
}

// validID reports whether id can be bound to a UUID column. Malformed ids
// can never match a row, so lookups short circuit to not found.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
