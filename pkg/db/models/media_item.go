package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/brightwell-digital/cms-backend/pkg/enums"
)

type MediaItem struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title       string          `gorm:"column:title;type:text;not null" json:"title" validate:"required"`
	Kind        enums.MediaKind `gorm:"column:kind;type:media_kind;not null" json:"kind" validate:"required"`
	Summary     string          `gorm:"column:summary;type:text" json:"summary"`
	URL         string          `gorm:"column:url;type:text;not null" json:"url" validate:"required,url"`
	ThumbURL    string          `gorm:"column:thumb_url;type:text" json:"thumb_url" validate:"omitempty,url"`
	PublishedAt *time.Time      `gorm:"column:published_at;type:timestamptz" json:"published_at,omitempty"`
	CreatedAt   time.Time       `gorm:"column:created_at;type:timestamptz;default:now()" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;type:timestamptz;default:now()" json:"updated_at"`
}

func (m *MediaItem) GetID() uuid.UUID   { return m.ID }
func (m *MediaItem) SetID(id uuid.UUID) { m.ID = id }
