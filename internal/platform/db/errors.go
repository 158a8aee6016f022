package db

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/storefront-admin/storefront-admin/internal/shared"
)

// PostgreSQL SQLSTATE codes mapped to shared.ErrConstraint.
const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
	codeNotNullViolation    = "23502"
	codeNumericOutOfRange   = "22003"
	codeStringTooLong       = "22001"
)

// MapError translates driver errors into shared sentinels. Errors the
// store raised for a rejected write, including values that do not fit a
// column, become shared.ErrConstraint, missing
// rows become shared.ErrNotFound and everything else is wrapped with op.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, shared.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeForeignKeyViolation, codeUniqueViolation, codeCheckViolation, codeNotNullViolation:
			return fmt.Errorf("%s: %w: %s", op, shared.ErrConstraint, pgErr.ConstraintName)
		case codeNumericOutOfRange, codeStringTooLong:
			return fmt.Errorf("%s: %w: %s", op, shared.ErrConstraint, pgErr.Message)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// RequireAffected returns shared.ErrNotFound when a write touched no rows.
func RequireAffected(op string, tag pgconn.CommandTag) error {
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, shared.ErrNotFound)
	}
	return nil
}
