package db

import "strings"

// IsUniqueViolation reports whether the provided error references a Postgres
// unique violation. When a constraint name is provided, the helper looks for
// that constraint's text in the error message instead.
func IsUniqueViolation(err error, constraintName ...string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, name := range constraintName {
		if name != "" {
			return strings.Contains(msg, name)
		}
	}
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
