package models

import (
	"time"

	"github.com/google/uuid"
)

type JobOpportunity struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title        string     `gorm:"column:title;type:text;not null" json:"title" validate:"required"`
	Department   string     `gorm:"column:department;type:text" json:"department"`
	Location     string     `gorm:"column:location;type:text" json:"location"`
	Description  string     `gorm:"column:description;type:text" json:"description"`
	Requirements string     `gorm:"column:requirements;type:text" json:"requirements"`
	ApplyURL     string     `gorm:"column:apply_url;type:text" json:"apply_url" validate:"omitempty,url"`
	Open         bool       `gorm:"column:open;not null;default:true" json:"open"`
	ClosesAt     *time.Time `gorm:"column:closes_at;type:timestamptz" json:"closes_at,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at;type:timestamptz;default:now()" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;type:timestamptz;default:now()" json:"updated_at"`
}

func (j *JobOpportunity) GetID() uuid.UUID   { return j.ID }
func (j *JobOpportunity) SetID(id uuid.UUID) { j.ID = id }
