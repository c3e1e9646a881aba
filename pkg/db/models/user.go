package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/brightwell-digital/cms-backend/pkg/enums"
)

type User struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email        string         `gorm:"column:email;type:citext;not null;uniqueIndex" json:"email"`
	PasswordHash string         `gorm:"column:password_hash;type:text;not null" json:"-"`
	DisplayName  string         `gorm:"column:display_name;type:text;not null" json:"display_name"`
	Role         enums.UserRole `gorm:"column:role;type:user_role;not null;default:editor" json:"role"`
	Active       bool           `gorm:"column:active;not null;default:true" json:"active"`
	CreatedAt    time.Time      `gorm:"column:created_at;type:timestamptz;default:now()" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;type:timestamptz;default:now()" json:"updated_at"`
}
