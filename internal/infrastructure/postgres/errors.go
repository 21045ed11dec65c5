package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nurmatov/onlineshop-api/internal/domain/repository"
)

var (
	ErrNotFound = repository.ErrNotFound
	ErrConflict = repository.ErrConflict
)

// isUniqueViolation reports whether err is a Postgres unique_violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
