package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnsphere/exam-service/internal/models"
)

func TestUserService_RegisterCreatesInactiveAccount(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	user, err := env.users.Register(ctx, &RegisterRequest{
		Name:     "Omar",
		Email:    "omar@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.False(t, user.IsActive, "new accounts wait for admin activation")
	assert.Equal(t, models.RoleUser, user.Role)

	_, err = env.users.Register(ctx, &RegisterRequest{
		Name:     "Omar Again",
		Email:    "omar@example.com",
		Password: "another1",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserService_RegisterValidatesInput(t *testing.T) {
	env := newTestEnv()

	_, err := env.users.Register(context.Background(), &RegisterRequest{
		Name:     "Omar",
		Email:    "not-an-email",
		Password: "secret1",
	})
	assert.Error(t, err)
}

func TestUserService_Login(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	registered, err := env.users.Register(ctx, &RegisterRequest{
		Name:     "Omar",
		Email:    "omar@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)

	// Inactive accounts cannot sign in even with correct credentials.
	_, err = env.users.Login(ctx, &LoginRequest{Email: "omar@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrUserInactive)

	_, err = env.users.SetActive(ctx, registered.ID, true)
	require.NoError(t, err)

	_, err = env.users.Login(ctx, &LoginRequest{Email: "omar@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.users.Login(ctx, &LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	user, err := env.users.Login(ctx, &LoginRequest{Email: "omar@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
}

func TestUserService_SetActiveUnknownUser(t *testing.T) {
	env := newTestEnv()
	_, err := env.users.SetActive(context.Background(), "missing", true)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_MaterialProgress(t *testing.T) {
	env := newTestEnv()
	_, _, user := env.seedCourse(true, 30)
	ctx := context.Background()

	done, err := env.users.HasCompletedAllMaterials(ctx, user.ID, "course-1")
	require.NoError(t, err)
	assert.False(t, done)

	require.NoError(t, env.users.MarkMaterialCompleted(ctx, user.ID, "mat-1"))

	done, err = env.users.HasCompletedAllMaterials(ctx, user.ID, "course-1")
	require.NoError(t, err)
	assert.False(t, done, "one of two materials is still open")

	require.NoError(t, env.users.MarkMaterialCompleted(ctx, user.ID, "mat-2"))

	done, err = env.users.HasCompletedAllMaterials(ctx, user.ID, "course-1")
	require.NoError(t, err)
	assert.True(t, done)

	progress, err := env.users.Progress(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, progress.CompletedMaterials, 2)
}

func TestUserService_CourseWithoutMaterialsCountsComplete(t *testing.T) {
	env := newTestEnv()
	env.store.AddUser(models.User{ID: "user-9", Name: "Lee", Email: "lee@example.com", IsActive: true})
	env.store.AddCourse(models.Course{ID: "course-9", Title: "Empty", ExamID: "exam-9"})

	done, err := env.users.HasCompletedAllMaterials(context.Background(), "user-9", "course-9")
	require.NoError(t, err)
	assert.True(t, done)
}
