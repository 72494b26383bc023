package store

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnsphere/exam-service/internal/models"
)

func newMirrorClient(t *testing.T) *redis.Client {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestRedisMirror_LoadEmpty(t *testing.T) {
	mirror := NewRedisMirror(newMirrorClient(t), "lms")

	_, found, err := mirror.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, found, "fresh mirror holds no snapshot")
}

func TestRedisMirror_SaveLoadRoundTrip(t *testing.T) {
	mirror := NewRedisMirror(newMirrorClient(t), "lms")
	ctx := context.Background()

	s := New()
	s.AddUser(models.User{ID: "user-1", Name: "Sara", Email: "sara@example.com", IsActive: true, Role: models.RoleUser})
	s.AddCourse(models.Course{
		ID:     "course-1",
		Title:  "React Fundamentals",
		ExamID: "exam-1",
		Modules: []models.Module{{
			ID:    "m-1",
			Title: "Hooks",
			Questions: []models.Question{{
				ID:            "q-1",
				Type:          models.TrueFalse,
				Text:          "Hooks may be called conditionally.",
				CorrectAnswer: models.BoolAnswer(false),
			}},
		}},
	})
	s.AddExam(models.Exam{ID: "exam-1", CourseID: "course-1", Title: "React Exam", NumberOfQuestions: 5, TimeLimit: 30, RandomizeQuestions: true})
	s.UpsertResult(models.ExamResult{
		ExamID:    "exam-1",
		UserID:    "user-1",
		Score:     87.5,
		Answers:   map[string]models.AnswerValue{"q-1": models.StringAnswer("false")},
		Timestamp: time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC),
	})
	p := models.NewUserProgress()
	p.CompletedMaterials["mat-1"] = true
	s.SetProgress("user-1", p)

	require.NoError(t, mirror.Save(ctx, s.Snapshot()))

	loaded, found, err := mirror.Load(ctx)
	require.NoError(t, err)
	require.True(t, found)

	restored := New()
	restored.Restore(loaded)

	course, ok := restored.CourseByID("course-1")
	require.True(t, ok)
	require.Len(t, course.Modules, 1)
	// The boolean correct answer must survive the string|bool JSON union.
	want, okBool := course.Modules[0].Questions[0].CorrectAnswer.AsBool()
	require.True(t, okBool)
	assert.False(t, want)

	result, ok := restored.Result("exam-1", "user-1")
	require.True(t, ok)
	assert.Equal(t, 87.5, result.Score)
	assert.Equal(t, "false", result.Answers["q-1"].Text)

	assert.True(t, restored.Progress("user-1").CompletedMaterials["mat-1"])
}

func TestRedisMirror_SaveOverwrites(t *testing.T) {
	mirror := NewRedisMirror(newMirrorClient(t), "lms")
	ctx := context.Background()

	s := New()
	s.AddUser(models.User{ID: "user-1", Name: "Sara", Email: "sara@example.com"})
	require.NoError(t, mirror.Save(ctx, s.Snapshot()))

	s.AddUser(models.User{ID: "user-2", Name: "Omar", Email: "omar@example.com"})
	require.NoError(t, mirror.Save(ctx, s.Snapshot()))

	loaded, found, err := mirror.Load(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Len(t, loaded.Users, 2)
}
