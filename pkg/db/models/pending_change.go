package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/brightwell-digital/cms-backend/pkg/enums"
)

// PendingChange is a moderation envelope wrapping one proposed mutation
// against a content collection. The proposed and prior entity states are
// stored as opaque serialized text; only the publisher knows how to turn
// them back into concrete records.
type PendingChange struct {
	ID             uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EntityType     enums.EntityType   `gorm:"column:entity_type;type:entity_type;not null" json:"entity_type"`
	EntityID       *uuid.UUID         `gorm:"column:entity_id;type:uuid" json:"entity_id"`
	Action         enums.ChangeAction `gorm:"column:action;type:change_action;not null" json:"action"`
	Status         enums.ChangeStatus `gorm:"column:status;type:change_status;not null;default:pending" json:"status"`
	SubmittedBy    string             `gorm:"column:submitted_by;type:text;not null" json:"submitted_by"`
	SubmittedAt    time.Time          `gorm:"column:submitted_at;type:timestamptz;default:now()" json:"submitted_at"`
	ReviewedBy     *string            `gorm:"column:reviewed_by;type:text" json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time         `gorm:"column:reviewed_at;type:timestamptz" json:"reviewed_at,omitempty"`
	ReviewComments *string            `gorm:"column:review_comments;type:text" json:"review_comments,omitempty"`
	ChangeData     string             `gorm:"column:change_data;type:text;not null" json:"change_data"`
	OriginalData   *string            `gorm:"column:original_data;type:text" json:"original_data,omitempty"`
}
