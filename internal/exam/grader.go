package exam

import (
	"strings"
	"time"

	"github.com/learnsphere/exam-service/internal/models"
)

// Grader compares submitted answers against correct answers using
// type-specific rules and computes a percentage score.
type Grader struct {
	now func() time.Time
}

func NewGrader() *Grader {
	return NewGraderWithClock(time.Now)
}

// NewGraderWithClock allows deterministic timestamps in tests.
func NewGraderWithClock(now func() time.Time) *Grader {
	return &Grader{now: now}
}

// Grade evaluates every question against the submitted answer map and
// returns the result record. Missing answers count as incorrect. An
// empty question set grades to a score of 0 rather than dividing by
// zero. The result carries the raw submitted answers for later review.
func (g *Grader) Grade(questions []models.Question, answers map[string]models.AnswerValue, examID, userID string) models.ExamResult {
	correct := 0
	for _, q := range questions {
		submitted, ok := answers[q.ID]
		if !ok {
			continue
		}
		if isCorrect(q, submitted) {
			correct++
		}
	}

	score := 0.0
	if len(questions) > 0 {
		score = float64(correct) / float64(len(questions)) * 100
	}

	raw := make(map[string]models.AnswerValue, len(answers))
	for id, v := range answers {
		raw[id] = v
	}

	return models.ExamResult{
		UserID:    userID,
		ExamID:    examID,
		Score:     score,
		Answers:   raw,
		Timestamp: g.now(),
	}
}

func isCorrect(q models.Question, submitted models.AnswerValue) bool {
	switch q.Type {
	case models.TrueFalse:
		want, ok := q.CorrectAnswer.AsBool()
		if !ok {
			return false
		}
		got, ok := submitted.AsBool()
		return ok && got == want
	case models.ShortAnswer:
		return normalize(submitted.String()) == normalize(q.CorrectAnswer.String())
	default:
		// Multiple choice and any future option-based type: exact match.
		return submitted.String() == q.CorrectAnswer.String()
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
