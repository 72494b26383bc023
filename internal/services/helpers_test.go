package services

import (
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/learnsphere/exam-service/internal/events"
	"github.com/learnsphere/exam-service/internal/exam"
	"github.com/learnsphere/exam-service/internal/models"
	"github.com/learnsphere/exam-service/internal/store"
	"github.com/learnsphere/exam-service/internal/validator"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// noopScheduler never fires. Keeps countdown behavior out of service
// tests; the session package covers timing on its own.
type noopScheduler struct{}

var _ exam.Scheduler = noopScheduler{}

func (noopScheduler) Schedule(d time.Duration, fn func()) func() { return func() {} }

func seededRand() func() *rand.Rand {
	return func() *rand.Rand { return rand.New(rand.NewSource(42)) }
}

type testEnv struct {
	store     *store.Store
	publisher *events.MockEventPublisher
	users     UserService
	courses   CourseService
	exams     ExamService
	impex     ImportExportService
}

func newTestEnv() *testEnv {
	st := store.New()
	logger := testLogger()
	publisher := events.NewMockEventPublisher(logger)
	v := validator.New()

	return &testEnv{
		store:     st,
		publisher: publisher,
		users:     NewUserService(st, nil, logger, v),
		courses:   NewCourseService(st, nil, publisher, logger, v),
		exams: NewExamService(st, nil, publisher, logger, ExamServiceOptions{
			Scheduler: noopScheduler{},
			NewRand:   seededRand(),
		}),
		impex: NewImportExportService(st, nil, logger, v),
	}
}

// seedCourse installs a course with one module holding four questions
// and its paired exam, plus an active user.
func (env *testEnv) seedCourse(locked bool, timeLimit int) (models.Course, models.Exam, models.User) {
	questions := []models.Question{
		{ID: "q-1", Type: models.MultipleChoice, Text: "Which hook stores state?", Options: []string{"useState", "useEffect"}, CorrectAnswer: models.StringAnswer("useState")},
		{ID: "q-2", Type: models.MultipleChoice, Text: "Which hook runs effects?", Options: []string{"useState", "useEffect"}, CorrectAnswer: models.StringAnswer("useEffect")},
		{ID: "q-3", Type: models.TrueFalse, Text: "Hooks may be called conditionally.", CorrectAnswer: models.BoolAnswer(false)},
		{ID: "q-4", Type: models.ShortAnswer, Text: "Name the state hook.", CorrectAnswer: models.StringAnswer("useState")},
	}

	course := models.Course{
		ID:     "course-1",
		Title:  "React Fundamentals",
		ExamID: "exam-1",
		Modules: []models.Module{{
			ID:    "m-1",
			Title: "Hooks",
			Materials: []models.Material{
				{ID: "mat-1", Type: models.MaterialVideo, Title: "Intro", URL: "https://example.com/intro"},
				{ID: "mat-2", Type: models.MaterialPDF, Title: "Notes", URL: "https://example.com/notes"},
			},
			Questions: questions,
		}},
	}

	ex := models.Exam{
		ID:                 "exam-1",
		CourseID:           "course-1",
		Title:              "React Fundamentals Exam",
		NumberOfQuestions:  3,
		IsLocked:           locked,
		TimeLimit:          timeLimit,
		RandomizeQuestions: true,
	}

	user := models.User{
		ID:       "user-1",
		Name:     "Sara",
		Email:    "sara@example.com",
		Password: "secret1",
		IsActive: true,
		Role:     models.RoleUser,
	}

	env.store.AddCourse(course)
	env.store.AddExam(ex)
	env.store.AddUser(user)
	return course, ex, user
}

func (env *testEnv) eventsOfType(t events.EventType) []events.ExamEvent {
	var out []events.ExamEvent
	for _, e := range env.publisher.GetPublishedEvents() {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}
