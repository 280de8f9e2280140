package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/biz_management_app/internal/apperrors"
	"github.com/SscSPs/biz_management_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres error codes the repositories react to.
const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgCheckViolation       = "23514"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
)

// salesNumberConstraint is the partial unique index on sales document numbers.
const salesNumberConstraint = "documents_sales_number_key"

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return classifyPgError(err, "failed to commit transaction")
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// classifyPgError maps driver errors onto the application sentinels:
// a taken sales number, serialization failures and deadlocks become
// ErrConflict so the whole save can be retried.
func classifyPgError(err error, message string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewAppError(404, message, fmt.Errorf("%w: %v", apperrors.ErrNotFound, err))
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return apperrors.NewAppError(500, message, err)
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		if pgErr.ConstraintName == salesNumberConstraint {
			return apperrors.NewAppError(409, message, fmt.Errorf("%w: document number already taken", apperrors.ErrConflict))
		}
		return apperrors.NewAppError(409, message, fmt.Errorf("%w: %s", apperrors.ErrDuplicate, pgErr.ConstraintName))
	case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable:
		return apperrors.NewAppError(409, message, fmt.Errorf("%w: %s", apperrors.ErrConflict, pgErr.Message))
	case pgForeignKeyViolation:
		return apperrors.NewAppError(400, message, apperrors.NewValidationError(constraintField(pgErr), "references a missing record"))
	case pgCheckViolation:
		return apperrors.NewAppError(400, message, apperrors.NewValidationError(constraintField(pgErr), pgErr.Message))
	}
	return apperrors.NewAppError(500, message, err)
}

// constraintField derives a column-ish name from a constraint such as
// "documents_customer_id_fkey".
func constraintField(pgErr *pgconn.PgError) string {
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	name := strings.TrimPrefix(pgErr.ConstraintName, pgErr.TableName+"_")
	name = strings.TrimSuffix(name, "_fkey")
	return strings.TrimSuffix(name, "_check")
}

// filterBuilder accumulates AND-ed conditions and their positional args.
type filterBuilder struct {
	conds []string
	args  []any
}

// add appends a condition; every "?" in cond is replaced by the next
// positional placeholder, in order.
func (b *filterBuilder) add(cond string, args ...any) {
	for _, a := range args {
		b.args = append(b.args, a)
		cond = strings.Replace(cond, "?", "$"+strconv.Itoa(len(b.args)), 1)
	}
	b.conds = append(b.conds, cond)
}

// addCursor restricts the query to rows strictly after the decoded cursor in
// (sortCol DESC, created_at DESC, idCol DESC) order.
func (b *filterBuilder) addCursor(nextToken *string, sortCol, createdCol, idCol string) error {
	if nextToken == nil || *nextToken == "" {
		return nil
	}
	cursor, err := pagination.DecodeToken(*nextToken)
	if err != nil {
		return apperrors.NewAppError(400, "invalid nextToken", apperrors.NewValidationError("nextToken", err.Error()))
	}
	b.add("("+sortCol+", "+createdCol+", "+idCol+") < (?, ?, ?)", cursor.SortDate, cursor.CreatedAt, cursor.ID)
	return nil
}

func (b *filterBuilder) where() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// limit appends a LIMIT placeholder for fetch and returns the clause.
func (b *filterBuilder) limit(fetch int) string {
	b.args = append(b.args, fetch)
	return " LIMIT $" + strconv.Itoa(len(b.args))
}

// trimPage cuts the extra row fetched to detect a following page and returns
// the token pointing at the last row kept.
func trimPage[T any](rows []T, limit int, cursorOf func(T) pagination.Cursor) ([]T, *string) {
	if len(rows) <= limit {
		return rows, nil
	}
	rows = rows[:limit]
	token := pagination.EncodeToken(cursorOf(rows[limit-1]))
	return rows, &token
}
