package models

import (
	"time"

	"github.com/google/uuid"
)

type CorporateLeader struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"column:name;type:text;not null" json:"name" validate:"required"`
	Title       string    `gorm:"column:title;type:text;not null" json:"title" validate:"required"`
	Bio         string    `gorm:"column:bio;type:text" json:"bio"`
	PhotoURL    string    `gorm:"column:photo_url;type:text" json:"photo_url" validate:"omitempty,url"`
	LinkedinURL string    `gorm:"column:linkedin_url;type:text" json:"linkedin_url" validate:"omitempty,url"`
	SortOrder   int       `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
	CreatedAt   time.Time `gorm:"column:created_at;type:timestamptz;default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;type:timestamptz;default:now()" json:"updated_at"`
}

func (c *CorporateLeader) GetID() uuid.UUID   { return c.ID }
func (c *CorporateLeader) SetID(id uuid.UUID) { c.ID = id }
