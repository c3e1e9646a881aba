package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GlobalMetric is a headline number shown on the landing page, for
// example "countries served" or "assets under management". Value is
// stored as an exact decimal so money-like figures survive round trips.
type GlobalMetric struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Label     string          `gorm:"column:label;type:text;not null" json:"label" validate:"required"`
	Value     decimal.Decimal `gorm:"column:value;type:numeric(18,4);not null" json:"value"`
	Unit      string          `gorm:"column:unit;type:text" json:"unit"`
	Prefix    string          `gorm:"column:prefix;type:text" json:"prefix"`
	SortOrder int             `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
	CreatedAt time.Time       `gorm:"column:created_at;type:timestamptz;default:now()" json:"created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at;type:timestamptz;default:now()" json:"updated_at"`
}

func (g *GlobalMetric) GetID() uuid.UUID   { return g.ID }
func (g *GlobalMetric) SetID(id uuid.UUID) { g.ID = id }
