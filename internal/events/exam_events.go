package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents different types of exam lifecycle events
type EventType string

const (
	// Session events
	EventSessionStarted EventType = "session.started"
	EventExamSubmitted  EventType = "session.submitted"

	// Result events
	EventResultRecorded EventType = "result.recorded"

	// Course events
	EventCourseCreated EventType = "course.created"
)

// ExamEvent is the base event structure for all exam lifecycle events
type ExamEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Session event payloads

type SessionStartedEvent struct {
	SessionID     string    `json:"session_id"`
	ExamID        string    `json:"exam_id"`
	UserID        string    `json:"user_id"`
	QuestionCount int       `json:"question_count"`
	TimeLimit     int       `json:"time_limit"` // minutes, 0 means untimed
	StartedAt     time.Time `json:"started_at"`
}

type ExamSubmittedEvent struct {
	SessionID   string    `json:"session_id"`
	ExamID      string    `json:"exam_id"`
	UserID      string    `json:"user_id"`
	Score       float64   `json:"score"`
	AutoTimeout bool      `json:"auto_timeout"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Result event payload

type ResultRecordedEvent struct {
	ExamID     string    `json:"exam_id"`
	UserID     string    `json:"user_id"`
	Score      float64   `json:"score"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Course event payload

type CourseCreatedEvent struct {
	CourseID  string    `json:"course_id"`
	ExamID    string    `json:"exam_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// Event factory functions

func NewSessionStartedEvent(sessionID, examID, userID string, questionCount, timeLimit int, startedAt time.Time) *ExamEvent {
	return &ExamEvent{
		ID:        generateEventID(),
		Type:      EventSessionStarted,
		Timestamp: time.Now(),
		Source:    "exam-service",
		Version:   "1.0",
		Data: SessionStartedEvent{
			SessionID:     sessionID,
			ExamID:        examID,
			UserID:        userID,
			QuestionCount: questionCount,
			TimeLimit:     timeLimit,
			StartedAt:     startedAt,
		},
	}
}

func NewExamSubmittedEvent(sessionID, examID, userID string, score float64, autoTimeout bool, submittedAt time.Time) *ExamEvent {
	return &ExamEvent{
		ID:        generateEventID(),
		Type:      EventExamSubmitted,
		Timestamp: time.Now(),
		Source:    "exam-service",
		Version:   "1.0",
		Data: ExamSubmittedEvent{
			SessionID:   sessionID,
			ExamID:      examID,
			UserID:      userID,
			Score:       score,
			AutoTimeout: autoTimeout,
			SubmittedAt: submittedAt,
		},
	}
}

func NewResultRecordedEvent(examID, userID string, score float64, recordedAt time.Time) *ExamEvent {
	return &ExamEvent{
		ID:        generateEventID(),
		Type:      EventResultRecorded,
		Timestamp: time.Now(),
		Source:    "exam-service",
		Version:   "1.0",
		Data: ResultRecordedEvent{
			ExamID:     examID,
			UserID:     userID,
			Score:      score,
			RecordedAt: recordedAt,
		},
	}
}

func NewCourseCreatedEvent(courseID, examID, title string, createdAt time.Time) *ExamEvent {
	return &ExamEvent{
		ID:        generateEventID(),
		Type:      EventCourseCreated,
		Timestamp: time.Now(),
		Source:    "exam-service",
		Version:   "1.0",
		Data: CourseCreatedEvent{
			CourseID:  courseID,
			ExamID:    examID,
			Title:     title,
			CreatedAt: createdAt,
		},
	}
}

func generateEventID() string {
	return uuid.NewString()
}
