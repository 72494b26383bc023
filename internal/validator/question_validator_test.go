package validator

import (
	"testing"

	"github.com/learnsphere/exam-service/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestQuestionValidator(t *testing.T) {
	v := NewQuestionValidator()

	tests := []struct {
		name     string
		question models.Question
		valid    bool
	}{
		{
			name: "valid multiple choice",
			question: models.Question{
				Type:          models.MultipleChoice,
				Text:          "Pick one",
				Options:       []string{"a", "b", "c"},
				CorrectAnswer: models.StringAnswer("b"),
			},
			valid: true,
		},
		{
			name: "multiple choice without options",
			question: models.Question{
				Type:          models.MultipleChoice,
				Text:          "Pick one",
				CorrectAnswer: models.StringAnswer("a"),
			},
			valid: false,
		},
		{
			name: "multiple choice answer not in options",
			question: models.Question{
				Type:          models.MultipleChoice,
				Text:          "Pick one",
				Options:       []string{"a", "b"},
				CorrectAnswer: models.StringAnswer("c"),
			},
			valid: false,
		},
		{
			name: "valid true/false",
			question: models.Question{
				Type:          models.TrueFalse,
				Text:          "Yes or no",
				CorrectAnswer: models.BoolAnswer(true),
			},
			valid: true,
		},
		{
			name: "true/false with non-boolean answer",
			question: models.Question{
				Type:          models.TrueFalse,
				Text:          "Yes or no",
				CorrectAnswer: models.StringAnswer("probably"),
			},
			valid: false,
		},
		{
			name: "valid short answer",
			question: models.Question{
				Type:          models.ShortAnswer,
				Text:          "Name it",
				CorrectAnswer: models.StringAnswer("useState"),
			},
			valid: true,
		},
		{
			name: "short answer without correct text",
			question: models.Question{
				Type:          models.ShortAnswer,
				Text:          "Name it",
				CorrectAnswer: models.StringAnswer(""),
			},
			valid: false,
		},
		{
			name: "missing text",
			question: models.Question{
				Type:          models.ShortAnswer,
				CorrectAnswer: models.StringAnswer("x"),
			},
			valid: false,
		},
		{
			name: "unknown type",
			question: models.Question{
				Type:          "ESSAY",
				Text:          "Write a lot",
				CorrectAnswer: models.StringAnswer("x"),
			},
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateQuestion(&tt.question)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
