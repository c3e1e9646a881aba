package enums

import "fmt"

// UserRole maps to the user_role enum in Postgres.
//
// Editors propose mutations that wait for review; admins mutate directly
// and act as reviewers for the pending queue.
type UserRole string

const (
	RoleEditor UserRole = "editor"
	RoleAdmin  UserRole = "admin"
)

var validUserRoles = []UserRole{
	RoleEditor,
	RoleAdmin,
}

// IsValid reports whether the value matches the canonical user_role enum.
func (r UserRole) IsValid() bool {
	for _, candidate := range validUserRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseUserRole converts raw input into UserRole.
func ParseUserRole(value string) (UserRole, error) {
	for _, candidate := range validUserRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user role %q", value)
}
