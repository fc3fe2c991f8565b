package services

import (
	"log"

	"github.com/anjiri1684/driving_exam/database"
	"github.com/anjiri1684/driving_exam/models"
	"github.com/google/uuid"
)

const (
	NotificationTypeSystem   = "system"
	NotificationTypePractice = "practice_result"
	NotificationTypeReport   = "accident_report"
	NotificationTypeReminder = "practice_reminder"
)

// Notify writes an in-app notification. Failures are logged, never surfaced to
// the request that triggered them.
func Notify(userID uuid.UUID, notificationType, title, content string) {
	notification := models.Notification{
		UserID:  userID,
		Type:    notificationType,
		Title:   title,
		Content: content,
	}
	if err := database.DB.Create(&notification).Error; err != nil {
		log.Printf("🔥 Failed to create notification for user %s: %v", userID, err)
	}
}
