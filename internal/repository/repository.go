package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"barwy-shop/internal/database"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrConflict marks writes rejected by a constraint or as invalid data. Retrying will not help.
	ErrConflict = errors.New("constraint violation")
	// ErrTransient marks failures that may succeed on retry.
	ErrTransient = errors.New("transient persistence failure")
)

// Repository is the CRUD contract shared by soft-deletable aggregates.
// Delete and Restore toggle a flag and never remove rows.
type Repository[T any, K comparable] interface {
	Create(ctx context.Context, entity *T) error
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id K) error
	Restore(ctx context.Context, id K) error
	GetByID(ctx context.Context, id K) (*T, error)
}

// IsConflict reports whether err was caused by a constraint violation
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsTransient reports whether err is worth retrying
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}

// classify attaches ErrConflict or ErrTransient to a driver error.
// The driver error stays in the chain for errors.As.
func classify(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%w: %w", ErrTransient, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || len(pgErr.Code) != 5 {
		return err
	}

	// SQLSTATE classes: 22 data exception, 23 integrity, 08 connection
	switch code := pgErr.Code; {
	case code[:2] == "22", code[:2] == "23":
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case code == "40001", code == "40P01", code == "57P01", code[:2] == "08":
		return fmt.Errorf("%w: %w", ErrTransient, err)
	}
	return err
}

// isUniqueViolation reports a unique_violation on the named constraint
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == constraint
}

// execOne runs a write that must touch exactly one row, returning notFound otherwise
func execOne(ctx context.Context, db *sql.DB, notFound error, query string, args ...any) error {
	result, err := database.Executor(ctx, db).ExecContext(ctx, query, args...)
	if err != nil {
		return classify(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return notFound
	}

	return nil
}
