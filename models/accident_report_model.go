package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ReportStatusDraft     = "draft"
	ReportStatusSubmitted = "submitted"
	ReportStatusArchived  = "archived"
)

type AccidentReport struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	AccidentTime     time.Time `gorm:"not null" json:"accident_time"`
	AccidentLocation *string   `gorm:"size:255" json:"accident_location"`
	Description      *string   `gorm:"type:text" json:"description"`
	OtherPartyInfo   *string   `gorm:"type:text" json:"other_party_info"`
	Status           string    `gorm:"size:20;not null;default:'draft'" json:"status"`
	PDFURL           *string   `gorm:"size:255" json:"pdf_url"`

	Photos []AccidentPhoto `gorm:"foreignkey:ReportID" json:"photos,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AccidentPhoto struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ReportID  uuid.UUID `gorm:"type:uuid;not null;index" json:"report_id"`
	ImageURL  string    `gorm:"size:255;not null" json:"image_url"`
	PhotoType string    `gorm:"size:50;not null;default:'other'" json:"photo_type"`
	Caption   string    `gorm:"size:255" json:"caption"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`

	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}
