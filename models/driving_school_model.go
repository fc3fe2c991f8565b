package models

import (
	"time"

	"github.com/google/uuid"
)

type DrivingSchool struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Address     *string   `gorm:"size:255" json:"address"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	Phone       *string   `gorm:"size:50" json:"phone"`
	LineID      *string   `gorm:"size:100" json:"line_id"`
	WebsiteURL  *string   `gorm:"size:255" json:"website_url"`
	Description *string   `gorm:"type:text" json:"description"`
	IsPartner   bool      `gorm:"default:false" json:"is_partner"`
	LogoURL     *string   `gorm:"size:255" json:"logo_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
