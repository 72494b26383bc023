package exam

import (
	"testing"
	"time"

	"github.com/learnsphere/exam-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradingPool() []models.Question {
	return []models.Question{
		{
			ID:            "q1",
			Type:          models.MultipleChoice,
			Text:          "Which hook manages local state?",
			Options:       []string{"useState", "useEffect", "useRef"},
			CorrectAnswer: models.StringAnswer("useState"),
		},
		{
			ID:            "q2",
			Type:          models.MultipleChoice,
			Text:          "Which hook runs side effects?",
			Options:       []string{"useState", "useEffect", "useMemo"},
			CorrectAnswer: models.StringAnswer("useEffect"),
		},
		{
			ID:            "q3",
			Type:          models.TrueFalse,
			Text:          "Props are mutable.",
			CorrectAnswer: models.BoolAnswer(false),
		},
		{
			ID:            "q4",
			Type:          models.ShortAnswer,
			Text:          "Name the hook that stores component state.",
			CorrectAnswer: models.StringAnswer("useState"),
		},
	}
}

func TestGrader_AllCorrect(t *testing.T) {
	grader := NewGrader()
	answers := map[string]models.AnswerValue{
		"q1": models.StringAnswer("useState"),
		"q2": models.StringAnswer("useEffect"),
		"q3": models.StringAnswer("false"),
		"q4": models.StringAnswer("useState"),
	}

	result := grader.Grade(gradingPool(), answers, "exam-1", "user-1")
	assert.Equal(t, 100.0, result.Score)
	assert.Equal(t, "exam-1", result.ExamID)
	assert.Equal(t, "user-1", result.UserID)
}

func TestGrader_HalfCorrect(t *testing.T) {
	grader := NewGrader()
	answers := map[string]models.AnswerValue{
		"q1": models.StringAnswer("useState"),
		"q2": models.StringAnswer("useMemo"),
		"q3": models.StringAnswer("true"),
		"q4": models.StringAnswer("useState"),
	}

	result := grader.Grade(gradingPool(), answers, "exam-1", "user-1")
	assert.Equal(t, 50.0, result.Score)
}

func TestGrader_EmptyQuestionSet(t *testing.T) {
	grader := NewGrader()

	result := grader.Grade(nil, map[string]models.AnswerValue{}, "exam-1", "user-1")
	assert.Equal(t, 0.0, result.Score)
}

func TestGrader_ShortAnswerNormalization(t *testing.T) {
	grader := NewGrader()
	questions := []models.Question{{
		ID:            "q1",
		Type:          models.ShortAnswer,
		Text:          "Name the state hook.",
		CorrectAnswer: models.StringAnswer("useState"),
	}}

	tests := []struct {
		name      string
		submitted string
		correct   bool
	}{
		{"mixed case with padding", "  UseState  ", true},
		{"exact", "useState", true},
		{"upper case", "USESTATE", true},
		{"wrong answer", "useEffect", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answers := map[string]models.AnswerValue{"q1": models.StringAnswer(tt.submitted)}
			result := grader.Grade(questions, answers, "exam-1", "user-1")
			if tt.correct {
				assert.Equal(t, 100.0, result.Score)
			} else {
				assert.Equal(t, 0.0, result.Score)
			}
		})
	}
}

func TestGrader_TrueFalseCoercion(t *testing.T) {
	grader := NewGrader()
	questions := []models.Question{{
		ID:            "q1",
		Type:          models.TrueFalse,
		Text:          "The sky is green.",
		CorrectAnswer: models.BoolAnswer(false),
	}}

	tests := []struct {
		name      string
		submitted models.AnswerValue
		correct   bool
	}{
		{"string false", models.StringAnswer("false"), true},
		{"native bool", models.BoolAnswer(false), true},
		{"string true", models.StringAnswer("true"), false},
		{"garbage string", models.StringAnswer("maybe"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answers := map[string]models.AnswerValue{"q1": tt.submitted}
			result := grader.Grade(questions, answers, "exam-1", "user-1")
			if tt.correct {
				assert.Equal(t, 100.0, result.Score)
			} else {
				assert.Equal(t, 0.0, result.Score)
			}
		})
	}
}

func TestGrader_MissingAnswersAreIncorrect(t *testing.T) {
	grader := NewGrader()

	// Only one of four questions answered; absent entries never count.
	answers := map[string]models.AnswerValue{
		"q1": models.StringAnswer("useState"),
	}
	result := grader.Grade(gradingPool(), answers, "exam-1", "user-1")
	assert.Equal(t, 25.0, result.Score)
}

func TestGrader_KeepsRawAnswersAndTimestamp(t *testing.T) {
	gradedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	grader := NewGraderWithClock(func() time.Time { return gradedAt })

	answers := map[string]models.AnswerValue{
		"q3": models.StringAnswer("FALSE  "), // stored raw, not normalized
	}
	result := grader.Grade(gradingPool(), answers, "exam-1", "user-1")

	require.Contains(t, result.Answers, "q3")
	assert.Equal(t, "FALSE  ", result.Answers["q3"].Text)
	assert.Equal(t, gradedAt, result.Timestamp)
}
