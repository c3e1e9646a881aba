package enums

import "fmt"

// AuditAction labels entries in the append-only audit log.
type AuditAction string

const (
	AuditActionSubmit  AuditAction = "submit"
	AuditActionApprove AuditAction = "approve"
	AuditActionReject  AuditAction = "reject"
	AuditActionDelete  AuditAction = "delete"
	AuditActionLogin   AuditAction = "login"
)

var validAuditActions = []AuditAction{
	AuditActionSubmit,
	AuditActionApprove,
	AuditActionReject,
	AuditActionDelete,
	AuditActionLogin,
}

// IsValid reports whether the value matches the canonical audit action set.
func (a AuditAction) IsValid() bool {
	for _, candidate := range validAuditActions {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAuditAction converts raw input into AuditAction.
func ParseAuditAction(value string) (AuditAction, error) {
	for _, candidate := range validAuditActions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid audit action %q", value)
}
