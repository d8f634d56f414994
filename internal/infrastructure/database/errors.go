package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes translated by the repositories
const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
)

// PgErrorCode returns the SQLSTATE and constraint of a server error.
// ok is false for anything that did not come from the server.
func PgErrorCode(err error) (code, constraint string, ok bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return "", "", false
	}
	return pgErr.Code, pgErr.ConstraintName, true
}

func IsUniqueViolation(err error, constraint string) bool {
	code, name, ok := PgErrorCode(err)
	return ok && code == CodeUniqueViolation && (constraint == "" || name == constraint)
}

func IsForeignKeyViolation(err error) bool {
	code, _, ok := PgErrorCode(err)
	return ok && code == CodeForeignKeyViolation
}

// PgErrorDetail returns the DETAIL line of a server error, "" otherwise
func PgErrorDetail(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Detail
	}
	return ""
}
