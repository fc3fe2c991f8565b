package services

import (
	"errors"

	"github.com/anjiri1684/driving_exam/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTooFewOptions      = errors.New("a question needs at least 2 options")
	ErrNoCorrectOption    = errors.New("a question needs at least one correct option")
	ErrSingleChoiceExcess = errors.New("a single_choice question can only have one correct option")
	ErrInvalidType        = errors.New("invalid question type")
)

type OptionInput struct {
	OptionText  string `json:"option_text" validate:"required"`
	IsCorrect   bool   `json:"is_correct"`
	OptionOrder int    `json:"option_order"`
}

// ValidateOptions enforces the answer-correctness invariants before any row is
// written: at least two options, at least one correct, and exactly one correct
// for single_choice and true_false questions.
func ValidateOptions(questionType string, options []OptionInput) error {
	switch questionType {
	case models.QuestionTypeSingleChoice, models.QuestionTypeMultipleChoice, models.QuestionTypeTrueFalse:
	default:
		return ErrInvalidType
	}

	if len(options) < 2 {
		return ErrTooFewOptions
	}

	correctCount := 0
	for _, option := range options {
		if option.IsCorrect {
			correctCount++
		}
	}

	if correctCount == 0 {
		return ErrNoCorrectOption
	}
	if correctCount > 1 && questionType != models.QuestionTypeMultipleChoice {
		return ErrSingleChoiceExcess
	}
	return nil
}

func buildOptions(questionID uuid.UUID, inputs []OptionInput) []models.QuestionOption {
	options := make([]models.QuestionOption, len(inputs))
	for i, input := range inputs {
		order := input.OptionOrder
		if order == 0 {
			order = i + 1
		}
		options[i] = models.QuestionOption{
			QuestionID:  questionID,
			OptionText:  input.OptionText,
			IsCorrect:   input.IsCorrect,
			OptionOrder: order,
		}
	}
	return options
}

// CreateQuestion persists a question together with its option set in one
// transaction.
func CreateQuestion(db *gorm.DB, question *models.Question, options []OptionInput) error {
	if err := ValidateOptions(question.QuestionType, options); err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(question).Error; err != nil {
			return err
		}
		return tx.Create(buildOptions(question.ID, options)).Error
	})
}

// ReplaceQuestionOptions swaps a question's whole option set (delete then
// reinsert) while keeping the question row and its id. The caller supplies the
// updated question fields on the model.
func ReplaceQuestionOptions(db *gorm.DB, question *models.Question, options []OptionInput) error {
	if err := ValidateOptions(question.QuestionType, options); err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(question).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", question.ID).Delete(&models.QuestionOption{}).Error; err != nil {
			return err
		}
		return tx.Create(buildOptions(question.ID, options)).Error
	})
}

// DeleteQuestion removes the options and then the question, all or nothing.
func DeleteQuestion(db *gorm.DB, questionID uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var question models.Question
		if err := tx.First(&question, "id = ?", questionID).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", questionID).Delete(&models.QuestionOption{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", questionID).Delete(&models.Bookmark{}).Error; err != nil {
			return err
		}
		return tx.Delete(&question).Error
	})
}
