package enums

import "fmt"

// ChangeStatus maps to the change_status enum in Postgres.
type ChangeStatus string

const (
	ChangeStatusPending  ChangeStatus = "pending"
	ChangeStatusApproved ChangeStatus = "approved"
	ChangeStatusRejected ChangeStatus = "rejected"
)

var validChangeStatuses = []ChangeStatus{
	ChangeStatusPending,
	ChangeStatusApproved,
	ChangeStatusRejected,
}

// IsValid reports whether the value matches the canonical change_status enum.
func (s ChangeStatus) IsValid() bool {
	for _, candidate := range validChangeStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status can no longer transition.
func (s ChangeStatus) IsTerminal() bool {
	return s == ChangeStatusApproved || s == ChangeStatusRejected
}

// ParseChangeStatus converts raw input into ChangeStatus.
func ParseChangeStatus(value string) (ChangeStatus, error) {
	for _, candidate := range validChangeStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid change status %q", value)
}
