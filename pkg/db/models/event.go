package models

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title       string     `gorm:"column:title;type:text;not null" json:"title" validate:"required"`
	Description string     `gorm:"column:description;type:text" json:"description"`
	Location    string     `gorm:"column:location;type:text" json:"location"`
	StartsAt    time.Time  `gorm:"column:starts_at;type:timestamptz;not null" json:"starts_at" validate:"required"`
	EndsAt      *time.Time `gorm:"column:ends_at;type:timestamptz" json:"ends_at,omitempty"`
	ImageURL    string     `gorm:"column:image_url;type:text" json:"image_url" validate:"omitempty,url"`
	Published   bool       `gorm:"column:published;not null;default:true" json:"published"`
	CreatedAt   time.Time  `gorm:"column:created_at;type:timestamptz;default:now()" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;type:timestamptz;default:now()" json:"updated_at"`
}

func (e *Event) GetID() uuid.UUID   { return e.ID }
func (e *Event) SetID(id uuid.UUID) { e.ID = id }
