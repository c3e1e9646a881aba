package models

import (
	"time"

	"github.com/google/uuid"
)

// PageContent holds a free-form content block keyed by page and section.
// Publishing a page_content change upserts on that key instead of by id.
type PageContent struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Page      string    `gorm:"column:page;type:text;not null;uniqueIndex:page_content_page_section_key" json:"page" validate:"required"`
	Section   string    `gorm:"column:section;type:text;not null;uniqueIndex:page_content_page_section_key" json:"section" validate:"required"`
	Content   string    `gorm:"column:content;type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz;default:now()" json:"updated_at"`
}

func (PageContent) TableName() string { return "page_content" }

func (p *PageContent) GetID() uuid.UUID   { return p.ID }
func (p *PageContent) SetID(id uuid.UUID) { p.ID = id }
