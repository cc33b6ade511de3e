package helper

import (
	"errors"
	"strings"
)

// pgSQLErr matches pgconn.PgError without importing pgx directly.
type pgSQLErr interface {
	SQLState() string
	Error() string
}

// IsDuplicateKey reports whether err is a Postgres unique violation
// (SQLSTATE 23505). Falls back to message sniffing for drivers that do not
// expose SQLState.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	var pgErr pgSQLErr
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23505"
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "sqlstate 23505") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint")
}

// IsForeignKeyViolation reports SQLSTATE 23503.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr pgSQLErr
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23503"
	}
	return strings.Contains(strings.ToLower(err.Error()), "sqlstate 23503")
}
