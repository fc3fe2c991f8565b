package services

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/anjiri1684/driving_exam/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// JoinOptionIDs serializes a submitted option set into the stored text form.
// IDs are sorted so equal sets always produce equal strings.
func JoinOptionIDs(ids []uuid.UUID) string {
	values := make([]string, len(ids))
	for i, id := range ids {
		values[i] = id.String()
	}
	sort.Strings(values)
	return strings.Join(values, ",")
}

// SplitOptionIDs parses a stored answer back into option ids, dropping
// anything that no longer parses.
func SplitOptionIDs(stored string) []uuid.UUID {
	if stored == "" {
		return nil
	}
	parts := strings.Split(stored, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, part := range parts {
		id, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// AnswerIsCorrect compares a stored answer against the correct option set.
// Correctness is exact set equality; selecting a strict subset or superset of
// the correct options earns no credit.
func AnswerIsCorrect(stored string, correctOptionIDs []uuid.UUID) bool {
	if len(correctOptionIDs) == 0 {
		return false
	}
	return stored == JoinOptionIDs(correctOptionIDs)
}

type SessionScore struct {
	TotalQuestions int
	CorrectAnswers int
	Score          int
	IsPassed       bool
}

// ScoreSession scores a completed question set. Questions with no recorded
// answer count as incorrect. Score is 100*correct/total rounded half up to an
// integer; the pass flag compares it against passingScore.
func ScoreSession(correctSets map[uuid.UUID][]uuid.UUID, answers map[uuid.UUID]string, passingScore int) SessionScore {
	result := SessionScore{TotalQuestions: len(correctSets)}
	if result.TotalQuestions == 0 {
		return result
	}

	for questionID, correctIDs := range correctSets {
		stored, answered := answers[questionID]
		if answered && AnswerIsCorrect(stored, correctIDs) {
			result.CorrectAnswers++
		}
	}

	result.Score = int(math.Round(100 * float64(result.CorrectAnswers) / float64(result.TotalQuestions)))
	result.IsPassed = result.Score >= passingScore
	return result
}

// UpsertAnswer records an answer for a session question. Resubmitting the same
// question overwrites the previous row instead of adding one: last write wins.
func UpsertAnswer(db *gorm.DB, answer *models.PracticeAnswer) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"selected_option_ids", "answered_at"}),
	}).Create(answer).Error
}

// FinalizeSession flips a session to completed and writes its practice record
// in one transaction. The transition is a conditional update guarded by the
// current status, so of two racing completions only one creates a record; the
// loser gets gorm.ErrRecordNotFound.
func FinalizeSession(db *gorm.DB, session *models.PracticeSession, score SessionScore, completedAt time.Time) (models.PracticeRecord, error) {
	record := models.PracticeRecord{
		UserID:         session.UserID,
		SessionID:      session.ID,
		CategoryID:     session.CategoryID,
		TotalQuestions: score.TotalQuestions,
		CorrectAnswers: score.CorrectAnswers,
		Score:          score.Score,
		IsPassed:       score.IsPassed,
		CompletedAt:    completedAt,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.PracticeSession{}).
			Where("id = ? AND status = ?", session.ID, models.SessionStatusInProgress).
			Updates(map[string]interface{}{"status": models.SessionStatusCompleted, "completed_at": &completedAt})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		return models.PracticeRecord{}, err
	}
	return record, nil
}
