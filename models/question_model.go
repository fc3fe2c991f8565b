package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	QuestionTypeSingleChoice   = "single_choice"
	QuestionTypeMultipleChoice = "multiple_choice"
	QuestionTypeTrueFalse      = "true_false"
)

type QuestionCategory struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"size:100;not null;unique" json:"name"`
	Description string    `gorm:"type:text" json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Question struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	QuestionText string     `gorm:"type:text;not null" json:"question_text"`
	QuestionType string     `gorm:"size:50;not null;default:'single_choice'" json:"question_type"`
	Explanation  *string    `gorm:"type:text" json:"explanation"`
	ImageURL     *string    `gorm:"size:255" json:"image_url"`
	CategoryID   uuid.UUID  `gorm:"type:uuid;not null" json:"category_id"`
	CreatedBy    *uuid.UUID `gorm:"type:uuid" json:"created_by"`

	Category QuestionCategory `gorm:"foreignkey:CategoryID" json:"-"`
	Options  []QuestionOption `gorm:"foreignkey:QuestionID" json:"options,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type QuestionOption struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	QuestionID  uuid.UUID `gorm:"type:uuid;not null;index" json:"question_id"`
	OptionText  string    `gorm:"type:text;not null" json:"option_text"`
	IsCorrect   bool      `gorm:"not null;default:false" json:"is_correct"`
	OptionOrder int       `gorm:"not null;default:0" json:"option_order"`
}
