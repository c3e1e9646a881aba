package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/brightwell-digital/cms-backend/pkg/enums"
)

// AuditLog records who did what to which record. Rows are append-only.
type AuditLog struct {
	ID         uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Actor      string             `gorm:"column:actor;type:text;not null" json:"actor"`
	Action     enums.AuditAction  `gorm:"column:action;type:audit_action;not null" json:"action"`
	EntityType *enums.EntityType  `gorm:"column:entity_type;type:entity_type" json:"entity_type,omitempty"`
	EntityID   *uuid.UUID         `gorm:"column:entity_id;type:uuid" json:"entity_id,omitempty"`
	ChangeID   *uuid.UUID         `gorm:"column:change_id;type:uuid" json:"change_id,omitempty"`
	Detail     *string            `gorm:"column:detail;type:text" json:"detail,omitempty"`
	CreatedAt  time.Time          `gorm:"column:created_at;type:timestamptz;default:now();index" json:"created_at"`
}
