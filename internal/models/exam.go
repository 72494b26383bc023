package models

import "time"

// Exam is the per-course exam configuration.
type Exam struct {
	ID       string `json:"id"`
	CourseID string `json:"courseId"`
	Title    string `json:"title" validate:"required"`

	// NumberOfQuestions is the target sample size drawn from the course's
	// question pool; it may exceed the pool size, in which case selection
	// clamps to the pool.
	NumberOfQuestions int `json:"numberOfQuestions" validate:"min=0"`

	// IsLocked gates access until the student has completed all course
	// materials.
	IsLocked bool `json:"isLocked"`

	// TimeLimit is in minutes; 0 means no limit.
	TimeLimit int `json:"timeLimit" validate:"min=0"`

	// RandomizeQuestions reshuffles the selected subset for display,
	// independent of the sampling shuffle.
	RandomizeQuestions bool `json:"randomizeQuestions"`
}

// ExamResult is the immutable record of one grading event. At most one
// result is retained per (examId, userId) pair; a new submission replaces
// the prior one.
type ExamResult struct {
	UserID string `json:"userId"`
	ExamID string `json:"examId"`

	// Score is a percentage in [0,100].
	Score float64 `json:"score"`

	// Answers is the raw submitted mapping, unnormalized, for review.
	Answers map[string]AnswerValue `json:"answers"`

	Timestamp time.Time `json:"timestamp"`
}
