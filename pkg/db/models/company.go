package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/brightwell-digital/cms-backend/pkg/types"
)

// Company is the singleton-ish corporate profile block rendered on the
// About page. Stats is a jsonb list of label/value pairs.
type Company struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string          `gorm:"column:name;type:text;not null" json:"name" validate:"required"`
	Tagline     string          `gorm:"column:tagline;type:text" json:"tagline"`
	Description string          `gorm:"column:description;type:text" json:"description"`
	Mission     string          `gorm:"column:mission;type:text" json:"mission"`
	Vision      string          `gorm:"column:vision;type:text" json:"vision"`
	LogoURL     string          `gorm:"column:logo_url;type:text" json:"logo_url" validate:"omitempty,url"`
	Stats       types.StatList  `gorm:"column:stats;type:jsonb" json:"stats"`
	CreatedAt   time.Time       `gorm:"column:created_at;type:timestamptz;default:now()" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;type:timestamptz;default:now()" json:"updated_at"`
}

func (c *Company) GetID() uuid.UUID   { return c.ID }
func (c *Company) SetID(id uuid.UUID) { c.ID = id }
