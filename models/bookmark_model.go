package models

import (
	"time"

	"github.com/google/uuid"
)

type Bookmark struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bookmark_user_question" json:"user_id"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bookmark_user_question" json:"question_id"`

	Question Question `gorm:"foreignkey:QuestionID" json:"question,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
