package jobs

import (
	"log"
	"time"

	"github.com/anjiri1684/driving_exam/database"
	"github.com/anjiri1684/driving_exam/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const staleSessionAge = 24 * time.Hour

// CleanupStaleSessions drops practice sessions that were started but never
// completed. They carry no score and would otherwise accumulate forever.
func CleanupStaleSessions() {
	log.Println("Running job: CleanupStaleSessions...")

	cutoff := time.Now().Add(-staleSessionAge)

	var sessionIDs []uuid.UUID
	err := database.DB.Model(&models.PracticeSession{}).
		Where("status = ? AND started_at < ?", models.SessionStatusInProgress, cutoff).
		Pluck("id", &sessionIDs).Error
	if err != nil {
		log.Printf("Error finding stale sessions: %v", err)
		return
	}
	if len(sessionIDs) == 0 {
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id IN ?", sessionIDs).Delete(&models.PracticeAnswer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("session_id IN ?", sessionIDs).Delete(&models.PracticeSessionQuestion{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", sessionIDs).Delete(&models.PracticeSession{}).Error
	})
	if err != nil {
		log.Printf("Error deleting stale sessions: %v", err)
		return
	}

	log.Printf("✅ Removed %d stale practice sessions", len(sessionIDs))
}
