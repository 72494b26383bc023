package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnsphere/exam-service/internal/events"
	"github.com/learnsphere/exam-service/internal/models"
)

func TestCourseService_CreatePairsAnExam(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	course, err := env.courses.Create(ctx, &CreateCourseRequest{Title: "Go Basics"})
	require.NoError(t, err)
	require.NotEmpty(t, course.ExamID)

	ex, err := env.courses.GetExam(ctx, course.ExamID)
	require.NoError(t, err)

	assert.Equal(t, course.ID, ex.CourseID)
	assert.Equal(t, "Go Basics Exam", ex.Title)
	assert.True(t, ex.IsLocked, "new exams start locked")
	assert.True(t, ex.RandomizeQuestions)
	assert.Equal(t, 5, ex.NumberOfQuestions)
	assert.Equal(t, 30, ex.TimeLimit)

	created := env.eventsOfType(events.EventCourseCreated)
	require.Len(t, created, 1)
}

func TestCourseService_ModuleMaterialQuestionFlow(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	course, err := env.courses.Create(ctx, &CreateCourseRequest{Title: "Go Basics"})
	require.NoError(t, err)

	module, err := env.courses.AddModule(ctx, course.ID, &AddModuleRequest{Title: "Syntax"})
	require.NoError(t, err)

	_, err = env.courses.AddMaterial(ctx, course.ID, module.ID, &AddMaterialRequest{
		Type:  models.MaterialPDF,
		Title: "Cheat Sheet",
		URL:   "https://example.com/cheatsheet.pdf",
	})
	require.NoError(t, err)

	question, err := env.courses.AddQuestion(ctx, course.ID, module.ID, &AddQuestionRequest{
		Type:          models.MultipleChoice,
		Text:          "Which keyword declares a variable?",
		Options:       []string{"var", "let"},
		CorrectAnswer: models.StringAnswer("var"),
	})
	require.NoError(t, err)

	reloaded, err := env.courses.GetByID(ctx, course.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Modules, 1)
	assert.Len(t, reloaded.Modules[0].Materials, 1)
	assert.Len(t, reloaded.Modules[0].Questions, 1)

	require.NoError(t, env.courses.RemoveQuestion(ctx, course.ID, module.ID, question.ID))
	assert.ErrorIs(t, env.courses.RemoveQuestion(ctx, course.ID, module.ID, question.ID), ErrQuestionNotFound)
}

func TestCourseService_AddQuestionRejectsInvalidContent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	course, err := env.courses.Create(ctx, &CreateCourseRequest{Title: "Go Basics"})
	require.NoError(t, err)
	module, err := env.courses.AddModule(ctx, course.ID, &AddModuleRequest{Title: "Syntax"})
	require.NoError(t, err)

	// Correct answer missing from the option list.
	_, err = env.courses.AddQuestion(ctx, course.ID, module.ID, &AddQuestionRequest{
		Type:          models.MultipleChoice,
		Text:          "Which keyword declares a variable?",
		Options:       []string{"var", "let"},
		CorrectAnswer: models.StringAnswer("const"),
	})
	assert.Error(t, err)

	// True/false with a free-text answer.
	_, err = env.courses.AddQuestion(ctx, course.ID, module.ID, &AddQuestionRequest{
		Type:          models.TrueFalse,
		Text:          "Go has classes.",
		CorrectAnswer: models.StringAnswer("nope"),
	})
	assert.Error(t, err)
}

func TestCourseService_UpdateExamConfig(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	course, err := env.courses.Create(ctx, &CreateCourseRequest{Title: "Go Basics"})
	require.NoError(t, err)

	updated, err := env.courses.UpdateExam(ctx, course.ExamID, &UpdateExamRequest{
		Title:              "Final",
		NumberOfQuestions:  10,
		IsLocked:           false,
		TimeLimit:          0,
		RandomizeQuestions: false,
	})
	require.NoError(t, err)

	assert.Equal(t, "Final", updated.Title)
	assert.Equal(t, 10, updated.NumberOfQuestions)
	assert.False(t, updated.IsLocked)
	assert.Zero(t, updated.TimeLimit)
	assert.False(t, updated.RandomizeQuestions)
}

func TestCourseService_DeleteRemovesExamAndResults(t *testing.T) {
	env := newTestEnv()
	_, ex, user := env.seedCourse(false, 0)
	ctx := context.Background()

	env.store.UpsertResult(models.ExamResult{ExamID: ex.ID, UserID: user.ID, Score: 50})

	require.NoError(t, env.courses.Delete(ctx, "course-1"))

	_, err := env.courses.GetByID(ctx, "course-1")
	assert.ErrorIs(t, err, ErrCourseNotFound)
	_, err = env.courses.GetExam(ctx, ex.ID)
	assert.ErrorIs(t, err, ErrExamNotFound)
	assert.Empty(t, env.store.Results())

	assert.ErrorIs(t, env.courses.Delete(ctx, "course-1"), ErrCourseNotFound)
}
