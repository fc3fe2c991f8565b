package handlers

import (
	"fmt"
	"time"

	config "github.com/anjiri1684/driving_exam/configs"
	"github.com/anjiri1684/driving_exam/database"
	"github.com/anjiri1684/driving_exam/models"
	"github.com/anjiri1684/driving_exam/services"
	"github.com/anjiri1684/driving_exam/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultPassingScore = 90

func passingScore() int {
	return config.ConfigInt("PASSING_SCORE", defaultPassingScore)
}

type CreateSessionRequest struct {
	CategoryID string `json:"category_id" validate:"required,uuid4"`
	Size       int    `json:"size" validate:"required,gt=0,lte=100"`
}

func CreatePracticeSession(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Validation failed", "errors": err.Error()})
	}

	categoryID, _ := uuid.Parse(req.CategoryID)

	var category models.QuestionCategory
	if err := database.DB.First(&category, "id = ?", categoryID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Category not found"})
	}

	// Random sample without replacement; a session never shows the same
	// question twice.
	var questions []models.Question
	if err := database.DB.
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("option_order ASC") }).
		Where("category_id = ?", categoryID).
		Order("RANDOM()").
		Limit(req.Size).
		Find(&questions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to select questions"})
	}
	if len(questions) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Category has no questions"})
	}

	session := models.PracticeSession{
		UserID:     userID,
		CategoryID: categoryID,
		Status:     models.SessionStatusInProgress,
		StartedAt:  time.Now(),
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&session).Error; err != nil {
			return err
		}
		sessionQuestions := make([]models.PracticeSessionQuestion, len(questions))
		for i, question := range questions {
			sessionQuestions[i] = models.PracticeSessionQuestion{
				SessionID:  session.ID,
				QuestionID: question.ID,
				Position:   i + 1,
			}
		}
		return tx.Create(&sessionQuestions).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to create practice session"})
	}

	publicQuestions := make([]PublicQuestion, len(questions))
	for i, question := range questions {
		publicQuestions[i] = toPublicQuestion(question)
	}

	response := fiber.Map{
		"session_id":      session.ID,
		"category_id":     categoryID,
		"status":          session.Status,
		"started_at":      session.StartedAt,
		"requested":       req.Size,
		"total_questions": len(questions),
		"questions":       publicQuestions,
	}
	// The category can hold fewer questions than asked for; the session then
	// covers all of them and says so rather than failing.
	if len(questions) < req.Size {
		response["message"] = fmt.Sprintf("Category only has %d questions, session created with all of them", len(questions))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": response})
}

func GetSessionQuestions(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var session models.PracticeSession
	if err := database.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Questions.Question").
		Preload("Questions.Question.Options", func(db *gorm.DB) *gorm.DB { return db.Order("option_order ASC") }).
		Preload("Answers").
		First(&session, "id = ? AND user_id = ?", c.Params("sessionId"), userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Practice session not found"})
	}

	answered := make(map[uuid.UUID][]uuid.UUID, len(session.Answers))
	for _, answer := range session.Answers {
		answered[answer.QuestionID] = services.SplitOptionIDs(answer.SelectedOptionIDs)
	}

	type sessionQuestion struct {
		Position          int            `json:"position"`
		Question          PublicQuestion `json:"question"`
		SelectedOptionIDs []uuid.UUID    `json:"selected_option_ids,omitempty"`
	}

	questions := make([]sessionQuestion, len(session.Questions))
	for i, entry := range session.Questions {
		questions[i] = sessionQuestion{
			Position:          entry.Position,
			Question:          toPublicQuestion(entry.Question),
			SelectedOptionIDs: answered[entry.QuestionID],
		}
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"session_id":      session.ID,
		"status":          session.Status,
		"started_at":      session.StartedAt,
		"completed_at":    session.CompletedAt,
		"total_questions": len(session.Questions),
		"questions":       questions,
	}})
}

type SubmitAnswerRequest struct {
	QuestionID        string   `json:"question_id" validate:"required,uuid4"`
	SelectedOptionIDs []string `json:"selected_option_ids" validate:"required,min=1,dive,uuid4"`
}

func SubmitSessionAnswer(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var session models.PracticeSession
	if err := database.DB.First(&session, "id = ? AND user_id = ?", c.Params("sessionId"), userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Practice session not found"})
	}
	if session.Status == models.SessionStatusCompleted {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Session is already completed"})
	}

	var req SubmitAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Validation failed", "errors": err.Error()})
	}

	questionID, _ := uuid.Parse(req.QuestionID)

	var membership int64
	if err := database.DB.Model(&models.PracticeSessionQuestion{}).
		Where("session_id = ? AND question_id = ?", session.ID, questionID).
		Count(&membership).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to record answer"})
	}
	if membership == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Question is not part of this session"})
	}

	selected := make([]uuid.UUID, 0, len(req.SelectedOptionIDs))
	for _, raw := range req.SelectedOptionIDs {
		id, _ := uuid.Parse(raw)
		selected = append(selected, id)
	}

	var validOptions int64
	if err := database.DB.Model(&models.QuestionOption{}).
		Where("question_id = ? AND id IN ?", questionID, selected).
		Count(&validOptions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to record answer"})
	}
	if validOptions != int64(len(selected)) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "One or more options do not belong to this question"})
	}

	answer := models.PracticeAnswer{
		SessionID:         session.ID,
		QuestionID:        questionID,
		SelectedOptionIDs: services.JoinOptionIDs(selected),
		AnsweredAt:        time.Now(),
	}
	if err := services.UpsertAnswer(database.DB, &answer); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to record answer"})
	}

	var answeredCount int64
	if err := database.DB.Model(&models.PracticeAnswer{}).Where("session_id = ?", session.ID).Count(&answeredCount).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to record answer"})
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"question_id": questionID,
		"answered":    answeredCount,
	}, "message": "Answer recorded"})
}

// CompletePracticeSession scores the session and writes its immutable record.
// This is the only place a score is ever computed; unanswered questions count
// as incorrect. The in_progress -> completed transition is a conditional
// update so two racing completions cannot both produce a record.
func CompletePracticeSession(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var session models.PracticeSession
	if err := database.DB.
		Preload("Questions").
		Preload("Answers").
		First(&session, "id = ? AND user_id = ?", c.Params("sessionId"), userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Practice session not found"})
	}
	if session.Status == models.SessionStatusCompleted {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Session is already completed"})
	}

	questionIDs := make([]uuid.UUID, len(session.Questions))
	for i, entry := range session.Questions {
		questionIDs[i] = entry.QuestionID
	}

	var options []models.QuestionOption
	if err := database.DB.Where("question_id IN ? AND is_correct = ?", questionIDs, true).Find(&options).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to load answer key"})
	}

	correctSets := make(map[uuid.UUID][]uuid.UUID, len(questionIDs))
	for _, questionID := range questionIDs {
		correctSets[questionID] = nil
	}
	for _, option := range options {
		correctSets[option.QuestionID] = append(correctSets[option.QuestionID], option.ID)
	}

	answers := make(map[uuid.UUID]string, len(session.Answers))
	for _, answer := range session.Answers {
		answers[answer.QuestionID] = answer.SelectedOptionIDs
	}

	score := services.ScoreSession(correctSets, answers, passingScore())

	record, err := services.FinalizeSession(database.DB, &session, score, time.Now())
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Session is already completed"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to complete session"})
	}

	resultText := "did not pass"
	if score.IsPassed {
		resultText = "passed"
	}
	go services.Notify(userID, services.NotificationTypePractice,
		"Practice session completed",
		fmt.Sprintf("You scored %d/100 (%d of %d correct) and %s.", score.Score, score.CorrectAnswers, score.TotalQuestions, resultText))

	return c.JSON(fiber.Map{"success": true, "data": record, "message": "Session completed"})
}

func ListPracticeRecords(c *fiber.Ctx) error {
	userID := currentUserID(c)
	page, limit, offset := utils.ParsePagination(c)

	var total int64
	database.DB.Model(&models.PracticeRecord{}).Where("user_id = ?", userID).Count(&total)

	var records []models.PracticeRecord
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("completed_at DESC").
		Limit(limit).Offset(offset).
		Find(&records).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to load practice records"})
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"records":    records,
		"pagination": utils.Pagination(page, limit, total),
	}})
}

type PracticeStats struct {
	TotalPractices      int64    `json:"total_practices"`
	AverageScore        *float64 `json:"average_score"`
	BestScore           *int     `json:"best_score"`
	WorstScore          *int     `json:"worst_score"`
	TotalQuestions      *int64   `json:"total_questions"`
	TotalCorrectAnswers *int64   `json:"total_correct_answers"`
	PassedPractices     int64    `json:"passed_practices"`
}

func GetPracticeStats(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var stats PracticeStats
	err := database.DB.Model(&models.PracticeRecord{}).
		Where("user_id = ?", userID).
		Select(`COUNT(*) as total_practices,
			AVG(score) as average_score,
			MAX(score) as best_score,
			MIN(score) as worst_score,
			SUM(total_questions) as total_questions,
			SUM(correct_answers) as total_correct_answers,
			COUNT(CASE WHEN is_passed THEN 1 END) as passed_practices`).
		Scan(&stats).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to load practice stats"})
	}

	return c.JSON(fiber.Map{"success": true, "data": stats})
}
