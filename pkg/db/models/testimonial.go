package models

import (
	"time"

	"github.com/google/uuid"
)

type Testimonial struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Quote     string    `gorm:"column:quote;type:text;not null" json:"quote" validate:"required"`
	Author    string    `gorm:"column:author;type:text;not null" json:"author" validate:"required"`
	AuthorJob string    `gorm:"column:author_job;type:text" json:"author_job"`
	Company   string    `gorm:"column:company;type:text" json:"company"`
	AvatarURL string    `gorm:"column:avatar_url;type:text" json:"avatar_url" validate:"omitempty,url"`
	SortOrder int       `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz;default:now()" json:"updated_at"`
}

func (t *Testimonial) GetID() uuid.UUID   { return t.ID }
func (t *Testimonial) SetID(id uuid.UUID) { t.ID = id }
