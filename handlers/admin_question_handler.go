package handlers

import (
	"errors"
	"fmt"

	"github.com/anjiri1684/driving_exam/database"
	"github.com/anjiri1684/driving_exam/models"
	"github.com/anjiri1684/driving_exam/services"
	"github.com/anjiri1684/driving_exam/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuestionRequest struct {
	QuestionText string                 `json:"question_text" validate:"required"`
	QuestionType string                 `json:"question_type" validate:"required,oneof=single_choice multiple_choice true_false"`
	CategoryID   string                 `json:"category_id" validate:"required,uuid4"`
	Explanation  *string                `json:"explanation"`
	ImageURL     *string                `json:"image_url"`
	Options      []services.OptionInput `json:"options" validate:"required,min=2,dive"`
}

func optionValidationStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, services.ErrTooFewOptions),
		errors.Is(err, services.ErrNoCorrectOption),
		errors.Is(err, services.ErrSingleChoiceExcess),
		errors.Is(err, services.ErrInvalidType):
		return fiber.StatusBadRequest, true
	}
	return 0, false
}

func AdminListQuestions(c *fiber.Ctx) error {
	page, limit, offset := utils.ParsePagination(c)
	search := c.Query("search")
	categoryID := c.Query("categoryId")
	questionType := c.Query("questionType")

	query := database.DB.Model(&models.Question{})
	if search != "" {
		query = query.Where("question_text ILIKE ?", "%"+search+"%")
	}
	if categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if questionType != "" {
		query = query.Where("question_type = ?", questionType)
	}

	var total int64
	query.Count(&total)

	var questions []models.Question
	if err := query.
		Preload("Category").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&questions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to load questions"})
	}

	type questionRow struct {
		models.Question
		CategoryName string `json:"category_name"`
		OptionsCount int64  `json:"options_count"`
	}
	rows := make([]questionRow, len(questions))
	for i, question := range questions {
		var optionsCount int64
		database.DB.Model(&models.QuestionOption{}).Where("question_id = ?", question.ID).Count(&optionsCount)
		rows[i] = questionRow{Question: question, CategoryName: question.Category.Name, OptionsCount: optionsCount}
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"questions":  rows,
		"pagination": utils.Pagination(page, limit, total),
	}})
}

func AdminGetQuestion(c *fiber.Ctx) error {
	var question models.Question
	if err := database.DB.
		Preload("Category").
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("option_order ASC") }).
		First(&question, "id = ?", c.Params("questionId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Question not found"})
	}
	return c.JSON(fiber.Map{"success": true, "data": question})
}

func AdminCreateQuestion(c *fiber.Ctx) error {
	adminID := currentUserID(c)

	var req QuestionRequest
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

	question := models.Question{
		QuestionText: req.QuestionText,
		QuestionType: req.QuestionType,
		Explanation:  req.Explanation,
		ImageURL:     req.ImageURL,
		CategoryID:   categoryID,
		CreatedBy:    &adminID,
	}

	if err := services.CreateQuestion(database.DB, &question, req.Options); err != nil {
		if status, ok := optionValidationStatus(err); ok {
			return c.Status(status).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to create question"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": fiber.Map{"question_id": question.ID}, "message": "Question created"})
}

func AdminUpdateQuestion(c *fiber.Ctx) error {
	var question models.Question
	if err := database.DB.First(&question, "id = ?", c.Params("questionId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Question not found"})
	}

	var req QuestionRequest
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

	question.QuestionText = req.QuestionText
	question.QuestionType = req.QuestionType
	question.Explanation = req.Explanation
	question.ImageURL = req.ImageURL
	question.CategoryID = categoryID

	if err := services.ReplaceQuestionOptions(database.DB, &question, req.Options); err != nil {
		if status, ok := optionValidationStatus(err); ok {
			return c.Status(status).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to update question"})
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"question_id": question.ID}, "message": "Question updated"})
}

func AdminDeleteQuestion(c *fiber.Ctx) error {
	questionID, err := uuid.Parse(c.Params("questionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid question id"})
	}

	if err := services.DeleteQuestion(database.DB, questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Question not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to delete question"})
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"question_id": questionID}, "message": "Question deleted"})
}

type BatchImportRequest struct {
	Questions []QuestionRequest `json:"questions" validate:"required,min=1,dive"`
}

// AdminBatchImportQuestions imports a whole batch in one transaction; if any
// item fails validation the import inserts nothing.
func AdminBatchImportQuestions(c *fiber.Ctx) error {
	adminID := currentUserID(c)

	var req BatchImportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Validation failed", "errors": err.Error()})
	}

	for i, item := range req.Questions {
		if err := services.ValidateOptions(item.QuestionType, item.Options); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": fmt.Sprintf("Question %d: %s", i+1, err.Error()),
			})
		}
	}

	var createdIDs []uuid.UUID
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		for _, item := range req.Questions {
			categoryID, parseErr := uuid.Parse(item.CategoryID)
			if parseErr != nil {
				return parseErr
			}
			var category models.QuestionCategory
			if err := tx.First(&category, "id = ?", categoryID).Error; err != nil {
				return err
			}

			question := models.Question{
				QuestionText: item.QuestionText,
				QuestionType: item.QuestionType,
				Explanation:  item.Explanation,
				ImageURL:     item.ImageURL,
				CategoryID:   categoryID,
				CreatedBy:    &adminID,
			}
			if err := services.CreateQuestion(tx, &question, item.Options); err != nil {
				return err
			}
			createdIDs = append(createdIDs, question.ID)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "One or more categories do not exist"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Batch import failed"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": fiber.Map{
		"imported":     len(createdIDs),
		"question_ids": createdIDs,
	}, "message": "Questions imported"})
}
