package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// MapError translates driver errors into domain errors. sql.ErrNoRows becomes
// notFound, a PostgreSQL unique violation becomes duplicate, and anything else
// is wrapped with fault so callers can match the storage-layer category while
// keeping the cause in the chain.
func MapError(err error, notFound, duplicate, fault error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return duplicate
	}

	return fmt.Errorf("%w: %w", fault, err)
}
