package dbx

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	// uniqueViolation is the Postgres SQLSTATE for unique_violation.
	uniqueViolation = "23505"
	checkViolation  = "23514"

	// dataExceptionClass covers string truncation, numeric overflow and
	// other malformed values.
	dataExceptionClass = "22"
)

// UniqueViolation reports whether err is a Postgres unique-constraint
// violation and, if so, the name of the violated constraint.
func UniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}

// InvalidInput reports whether err is a Postgres error caused by the stored
// values themselves (data exceptions and check violations) rather than by
// the database.
func InvalidInput(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == checkViolation || strings.HasPrefix(pgErr.Code, dataExceptionClass)
}
