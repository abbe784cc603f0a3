package database

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"
)

// IsUniqueViolation reports whether err is a unique constraint violation.
// Postgres is matched by SQLSTATE 23505; the sqlite driver used in tests
// only exposes the violation through its message.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "constraint failed")
}

// IsNoRows reports whether err means the query matched nothing.
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
