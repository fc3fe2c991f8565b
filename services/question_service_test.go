package services

import (
	"errors"
	"testing"

	"github.com/anjiri1684/driving_exam/models"
)

func options(correctFlags ...bool) []OptionInput {
	result := make([]OptionInput, len(correctFlags))
	for i, correct := range correctFlags {
		result[i] = OptionInput{OptionText: "option", IsCorrect: correct, OptionOrder: i + 1}
	}
	return result
}

func TestValidateOptions(t *testing.T) {
	testCases := []struct {
		name         string
		questionType string
		options      []OptionInput
		wantErr      error
	}{
		{"single choice one correct", models.QuestionTypeSingleChoice, options(true, false, false), nil},
		{"single choice no correct", models.QuestionTypeSingleChoice, options(false, false), ErrNoCorrectOption},
		{"single choice two correct", models.QuestionTypeSingleChoice, options(true, true, false), ErrSingleChoiceExcess},
		{"true false one correct", models.QuestionTypeTrueFalse, options(true, false), nil},
		{"true false two correct", models.QuestionTypeTrueFalse, options(true, true), ErrSingleChoiceExcess},
		{"multiple choice several correct", models.QuestionTypeMultipleChoice, options(true, true, false), nil},
		{"multiple choice no correct", models.QuestionTypeMultipleChoice, options(false, false, false), ErrNoCorrectOption},
		{"too few options", models.QuestionTypeSingleChoice, options(true), ErrTooFewOptions},
		{"no options at all", models.QuestionTypeSingleChoice, nil, ErrTooFewOptions},
		{"unknown type", "essay", options(true, false), ErrInvalidType},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateOptions(tc.questionType, tc.options)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected error %v, got %v", tc.wantErr, err)
			}
		})
	}
}
