package models

import (
	"time"

	"github.com/google/uuid"
)

type Partner struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name       string    `gorm:"column:name;type:text;not null" json:"name" validate:"required"`
	LogoURL    string    `gorm:"column:logo_url;type:text" json:"logo_url" validate:"omitempty,url"`
	WebsiteURL string    `gorm:"column:website_url;type:text" json:"website_url" validate:"omitempty,url"`
	SortOrder  int       `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
	CreatedAt  time.Time `gorm:"column:created_at;type:timestamptz;default:now()" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;type:timestamptz;default:now()" json:"updated_at"`
}

func (p *Partner) GetID() uuid.UUID   { return p.ID }
func (p *Partner) SetID(id uuid.UUID) { p.ID = id }
