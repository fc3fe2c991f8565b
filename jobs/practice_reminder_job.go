package jobs

import (
	"log"
	"time"

	"github.com/anjiri1684/driving_exam/database"
	"github.com/anjiri1684/driving_exam/models"
	"github.com/anjiri1684/driving_exam/services"
)

const reminderInactivity = 7 * 24 * time.Hour

// SendPracticeReminders nudges active users who have not completed a practice
// session for a week. At most one reminder per day per user.
func SendPracticeReminders() {
	log.Println("Running job: SendPracticeReminders...")

	cutoff := time.Now().Add(-reminderInactivity)

	var users []models.User
	err := database.DB.
		Where("is_active = ? AND role = ?", true, "user").
		Where("id NOT IN (?)", database.DB.Model(&models.PracticeRecord{}).
			Select("user_id").Where("completed_at >= ?", cutoff)).
		Find(&users).Error
	if err != nil {
		log.Printf("Error finding inactive users: %v", err)
		return
	}

	reminded := 0
	for _, user := range users {
		var recent int64
		database.DB.Model(&models.Notification{}).
			Where("user_id = ? AND type = ? AND created_at > ?", user.ID, services.NotificationTypeReminder, time.Now().Add(-24*time.Hour)).
			Count(&recent)
		if recent > 0 {
			continue
		}

		services.Notify(user.ID, services.NotificationTypeReminder,
			"Time to practice",
			"You have not practiced for a week. A short session keeps the rules fresh before your exam.")
		reminded++
	}

	if reminded > 0 {
		log.Printf("✅ Sent %d practice reminders", reminded)
	}
}
