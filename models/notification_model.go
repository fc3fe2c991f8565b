package models

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Type    string    `gorm:"size:50;not null;default:'system'" json:"type"`
	Title   string    `gorm:"size:255;not null" json:"title"`
	Content string    `gorm:"type:text" json:"content"`
	IsRead  bool      `gorm:"not null;default:false" json:"is_read"`

	CreatedAt time.Time `json:"created_at"`
}
