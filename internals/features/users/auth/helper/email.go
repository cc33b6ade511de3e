package helper

import "strings"

// NormalizeEmail is applied before every store read or write touching the
// email column, so uniqueness is effectively case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
