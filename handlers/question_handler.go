package handlers

import (
	"github.com/anjiri1684/driving_exam/database"
	"github.com/anjiri1684/driving_exam/models"
	"github.com/anjiri1684/driving_exam/services"
	"github.com/anjiri1684/driving_exam/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PublicOption is the option shape handed to exam takers: no correct flag.
type PublicOption struct {
	ID          uuid.UUID `json:"id"`
	OptionText  string    `json:"option_text"`
	OptionOrder int       `json:"option_order"`
}

type PublicQuestion struct {
	ID           uuid.UUID      `json:"id"`
	QuestionText string         `json:"question_text"`
	QuestionType string         `json:"question_type"`
	ImageURL     *string        `json:"image_url"`
	CategoryID   uuid.UUID      `json:"category_id"`
	Options      []PublicOption `json:"options"`
}

func toPublicQuestion(question models.Question) PublicQuestion {
	options := make([]PublicOption, len(question.Options))
	for i, option := range question.Options {
		options[i] = PublicOption{ID: option.ID, OptionText: option.OptionText, OptionOrder: option.OptionOrder}
	}
	return PublicQuestion{
		ID:           question.ID,
		QuestionText: question.QuestionText,
		QuestionType: question.QuestionType,
		ImageURL:     question.ImageURL,
		CategoryID:   question.CategoryID,
		Options:      options,
	}
}

func GetQuestionsByCategory(c *fiber.Ctx) error {
	categoryID := c.Params("categoryId")

	var category models.QuestionCategory
	if err := database.DB.First(&category, "id = ?", categoryID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Category not found"})
	}

	page, limit, offset := utils.ParsePagination(c)

	var total int64
	database.DB.Model(&models.Question{}).Where("category_id = ?", categoryID).Count(&total)

	var questions []models.Question
	if err := database.DB.
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("option_order ASC") }).
		Where("category_id = ?", categoryID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&questions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to load questions"})
	}

	publicQuestions := make([]PublicQuestion, len(questions))
	for i, question := range questions {
		publicQuestions[i] = toPublicQuestion(question)
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"questions":  publicQuestions,
		"pagination": utils.Pagination(page, limit, total),
	}})
}

func GetQuestion(c *fiber.Ctx) error {
	var question models.Question
	if err := database.DB.
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("option_order ASC") }).
		First(&question, "id = ?", c.Params("questionId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Question not found"})
	}
	return c.JSON(fiber.Map{"success": true, "data": toPublicQuestion(question)})
}

type StandaloneAnswerRequest struct {
	QuestionID        string   `json:"question_id" validate:"required,uuid4"`
	SelectedOptionIDs []string `json:"selected_option_ids" validate:"required,min=1,dive,uuid4"`
}

// SubmitStandaloneAnswer checks one answer outside of any session, used by the
// browse-and-drill mode. Nothing is persisted.
func SubmitStandaloneAnswer(c *fiber.Ctx) error {
	var req StandaloneAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Validation failed", "errors": err.Error()})
	}

	var question models.Question
	if err := database.DB.Preload("Options").First(&question, "id = ?", req.QuestionID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Question not found"})
	}

	selected := make([]uuid.UUID, 0, len(req.SelectedOptionIDs))
	for _, raw := range req.SelectedOptionIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid option id"})
		}
		selected = append(selected, id)
	}

	var correctIDs []uuid.UUID
	for _, option := range question.Options {
		if option.IsCorrect {
			correctIDs = append(correctIDs, option.ID)
		}
	}

	isCorrect := services.AnswerIsCorrect(services.JoinOptionIDs(selected), correctIDs)

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"is_correct":         isCorrect,
		"correct_option_ids": correctIDs,
		"explanation":        question.Explanation,
	}})
}

func BookmarkQuestion(c *fiber.Ctx) error {
	userID := currentUserID(c)
	questionID, err := uuid.Parse(c.Params("questionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid question id"})
	}

	var question models.Question
	if err := database.DB.First(&question, "id = ?", questionID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Question not found"})
	}

	var existing int64
	database.DB.Model(&models.Bookmark{}).Where("user_id = ? AND question_id = ?", userID, questionID).Count(&existing)
	if existing > 0 {
		return c.JSON(fiber.Map{"success": true, "message": "Question already bookmarked"})
	}

	bookmark := models.Bookmark{UserID: userID, QuestionID: questionID}
	if err := database.DB.Create(&bookmark).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to bookmark question"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": bookmark, "message": "Question bookmarked"})
}

func UnbookmarkQuestion(c *fiber.Ctx) error {
	userID := currentUserID(c)
	result := database.DB.Where("user_id = ? AND question_id = ?", userID, c.Params("questionId")).Delete(&models.Bookmark{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to remove bookmark"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Bookmark not found"})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Bookmark removed"})
}

func ListBookmarks(c *fiber.Ctx) error {
	userID := currentUserID(c)
	page, limit, offset := utils.ParsePagination(c)

	var total int64
	database.DB.Model(&models.Bookmark{}).Where("user_id = ?", userID).Count(&total)

	var bookmarks []models.Bookmark
	if err := database.DB.
		Preload("Question").
		Preload("Question.Options", func(db *gorm.DB) *gorm.DB { return db.Order("option_order ASC") }).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&bookmarks).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to load bookmarks"})
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"bookmarks":  bookmarks,
		"pagination": utils.Pagination(page, limit, total),
	}})
}
