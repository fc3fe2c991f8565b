package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Username           string     `gorm:"size:50;not null;unique" json:"username"`
	Email              string     `gorm:"size:255;not null;unique" json:"email"`
	Password           string     `gorm:"not null" json:"-"`
	Role               string     `gorm:"size:20;not null;default:'user'" json:"role"`
	IsActive           bool       `gorm:"default:true" json:"is_active"`
	LanguagePreference string     `gorm:"size:10;default:'zh'" json:"language_preference"`
	LastLoginAt        *time.Time `json:"last_login_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
