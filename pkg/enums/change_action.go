package enums

import "fmt"

// ChangeAction maps to the change_action enum in Postgres.
type ChangeAction string

const (
	ChangeActionCreate ChangeAction = "create"
	ChangeActionUpdate ChangeAction = "update"
	ChangeActionDelete ChangeAction = "delete"
)

var validChangeActions = []ChangeAction{
	ChangeActionCreate,
	ChangeActionUpdate,
	ChangeActionDelete,
}

// IsValid reports whether the value matches the canonical change_action enum.
func (a ChangeAction) IsValid() bool {
	for _, candidate := range validChangeActions {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseChangeAction converts raw input into ChangeAction.
func ParseChangeAction(value string) (ChangeAction, error) {
	for _, candidate := range validChangeActions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid change action %q", value)
}
