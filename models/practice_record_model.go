package models

import (
	"time"

	"github.com/google/uuid"
)

// PracticeRecord is written exactly once when a session completes and is never
// updated afterwards.
type PracticeRecord struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	SessionID      uuid.UUID `gorm:"type:uuid;not null;unique" json:"session_id"`
	CategoryID     uuid.UUID `gorm:"type:uuid;not null" json:"category_id"`
	TotalQuestions int       `gorm:"not null" json:"total_questions"`
	CorrectAnswers int       `gorm:"not null" json:"correct_answers"`
	Score          int       `gorm:"not null" json:"score"`
	IsPassed       bool      `gorm:"not null" json:"is_passed"`
	CompletedAt    time.Time `gorm:"not null" json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
}
