package validator

import (
	"fmt"

	apperrors "github.com/learnsphere/exam-service/internal/errors"
	"github.com/learnsphere/exam-service/internal/models"
)

// QuestionValidator handles question-specific validation
type QuestionValidator struct{}

// NewQuestionValidator creates a new question validator
func NewQuestionValidator() *QuestionValidator {
	return &QuestionValidator{}
}

// ValidateQuestion validates a complete question object against the
// per-type rules:
//   - MULTIPLE_CHOICE needs at least one option and the correct answer
//     must equal one option's text.
//   - TRUE_FALSE needs a boolean correct answer and takes no options.
//   - SHORT_ANSWER needs a non-empty free-text correct answer.
func (v *QuestionValidator) ValidateQuestion(question *models.Question) error {
	if question.Text == "" {
		return apperrors.NewValidationError("text", "is required", question.Text)
	}

	switch question.Type {
	case models.MultipleChoice:
		return v.validateMultipleChoice(question)
	case models.TrueFalse:
		return v.validateTrueFalse(question)
	case models.ShortAnswer:
		return v.validateShortAnswer(question)
	default:
		return apperrors.NewValidationError("type", "unsupported question type", string(question.Type))
	}
}

// ValidateBatch validates multiple questions
func (v *QuestionValidator) ValidateBatch(questions []*models.Question) error {
	var errs apperrors.ValidationErrors
	for i, question := range questions {
		if err := v.ValidateQuestion(question); err != nil {
			if ve, ok := err.(*apperrors.ValidationError); ok {
				indexed := *ve
				indexed.Field = questionField(i, ve.Field)
				errs = append(errs, indexed)
				continue
			}
			errs = append(errs, apperrors.ValidationError{
				Field:   questionField(i, ""),
				Message: err.Error(),
			})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func questionField(index int, field string) string {
	prefix := fmt.Sprintf("questions[%d]", index)
	if field == "" {
		return prefix
	}
	return prefix + "." + field
}

func (v *QuestionValidator) validateMultipleChoice(q *models.Question) error {
	if len(q.Options) == 0 {
		return apperrors.NewValidationError("options", "multiple choice questions need at least one option", nil)
	}
	if q.CorrectAnswer.IsBool {
		return apperrors.NewValidationError("correctAnswer", "must be the text of one option", q.CorrectAnswer.String())
	}
	for _, opt := range q.Options {
		if opt == q.CorrectAnswer.Text {
			return nil
		}
	}
	return apperrors.NewValidationError("correctAnswer", "must equal one of the options", q.CorrectAnswer.Text)
}

func (v *QuestionValidator) validateTrueFalse(q *models.Question) error {
	if len(q.Options) > 0 {
		return apperrors.NewValidationError("options", "true/false questions take no options", nil)
	}
	if _, ok := q.CorrectAnswer.AsBool(); !ok {
		return apperrors.NewValidationError("correctAnswer", "must be a boolean", q.CorrectAnswer.String())
	}
	return nil
}

func (v *QuestionValidator) validateShortAnswer(q *models.Question) error {
	if q.CorrectAnswer.IsBool {
		return apperrors.NewValidationError("correctAnswer", "must be free text", q.CorrectAnswer.String())
	}
	if q.CorrectAnswer.Text == "" {
		return apperrors.NewValidationError("correctAnswer", "is required", "")
	}
	return nil
}
