package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	SessionStatusInProgress = "in_progress"
	SessionStatusCompleted  = "completed"
)

type PracticeSession struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID  uuid.UUID  `gorm:"type:uuid;not null" json:"category_id"`
	Status      string     `gorm:"size:20;not null;default:'in_progress'" json:"status"`
	StartedAt   time.Time  `gorm:"not null" json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`

	Questions []PracticeSessionQuestion `gorm:"foreignkey:SessionID" json:"questions,omitempty"`
	Answers   []PracticeAnswer          `gorm:"foreignkey:SessionID" json:"answers,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PracticeSessionQuestion pins one question into a session at a fixed position.
type PracticeSessionQuestion struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SessionID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_session_question" json:"session_id"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_session_question" json:"question_id"`
	Position   int       `gorm:"not null" json:"position"`

	Question Question `gorm:"foreignkey:QuestionID" json:"question,omitempty"`
}

// PracticeAnswer holds the latest submitted option set for one session question.
// SelectedOptionIDs is a comma-joined list of option UUIDs; resubmitting the same
// question overwrites the row.
type PracticeAnswer struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SessionID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_answer_session_question" json:"session_id"`
	QuestionID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_answer_session_question" json:"question_id"`
	SelectedOptionIDs string    `gorm:"type:text;not null" json:"selected_option_ids"`
	AnsweredAt        time.Time `gorm:"not null" json:"answered_at"`
}
