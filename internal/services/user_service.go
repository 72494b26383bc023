package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/learnsphere/exam-service/internal/models"
	"github.com/learnsphere/exam-service/internal/store"
	"github.com/learnsphere/exam-service/internal/validator"
)

// UserService manages accounts and per-user course progress.
type UserService interface {
	Register(ctx context.Context, req *RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *LoginRequest) (*models.User, error)
	GetByID(ctx context.Context, userID string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	SetActive(ctx context.Context, userID string, active bool) (*models.User, error)

	MarkMaterialCompleted(ctx context.Context, userID, materialID string) error
	Progress(ctx context.Context, userID string) (models.UserProgress, error)
	HasCompletedAllMaterials(ctx context.Context, userID, courseID string) (bool, error)
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userService struct {
	store     *store.Store
	mirror    store.Mirror
	logger    *slog.Logger
	validator *validator.Validator
}

func NewUserService(st *store.Store, mirror store.Mirror, logger *slog.Logger, validator *validator.Validator) UserService {
	return &userService{
		store:     st,
		mirror:    mirror,
		logger:    logger,
		validator: validator,
	}
}

// Register creates a new inactive account. An administrator has to
// activate it before the user can sign in.
func (s *userService) Register(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, validationFailed(err)
	}

	if _, exists := s.store.UserByEmail(req.Email); exists {
		return nil, ErrEmailTaken
	}

	user := models.User{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		IsActive: false,
		Role:     models.RoleUser,
	}
	s.store.AddUser(user)
	s.saveMirror(ctx, "register")

	s.logger.Info("User registered", "user_id", user.ID, "email", user.Email)
	return &user, nil
}

func (s *userService) Login(ctx context.Context, req *LoginRequest) (*models.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, validationFailed(err)
	}

	user, exists := s.store.UserByEmail(req.Email)
	if !exists || user.Password != req.Password {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	s.logger.Info("User logged in", "user_id", user.ID)
	return &user, nil
}

func (s *userService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	user, exists := s.store.UserByID(userID)
	if !exists {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	return s.store.Users(), nil
}

func (s *userService) SetActive(ctx context.Context, userID string, active bool) (*models.User, error) {
	user, exists := s.store.UserByID(userID)
	if !exists {
		return nil, ErrUserNotFound
	}

	user.IsActive = active
	s.store.UpdateUser(user)
	s.saveMirror(ctx, "set_active")

	s.logger.Info("User activation changed", "user_id", userID, "active", active)
	return &user, nil
}

// ===== PROGRESS =====

func (s *userService) MarkMaterialCompleted(ctx context.Context, userID, materialID string) error {
	if _, exists := s.store.UserByID(userID); !exists {
		return ErrUserNotFound
	}

	progress := s.store.Progress(userID)
	progress.CompletedMaterials[materialID] = true
	s.store.SetProgress(userID, progress)
	s.saveMirror(ctx, "mark_material_completed")

	s.logger.Info("Material completed", "user_id", userID, "material_id", materialID)
	return nil
}

func (s *userService) Progress(ctx context.Context, userID string) (models.UserProgress, error) {
	if _, exists := s.store.UserByID(userID); !exists {
		return models.UserProgress{}, ErrUserNotFound
	}
	return s.store.Progress(userID), nil
}

// HasCompletedAllMaterials reports whether the user has finished every
// material in the course. A course with no materials counts as complete.
func (s *userService) HasCompletedAllMaterials(ctx context.Context, userID, courseID string) (bool, error) {
	course, exists := s.store.CourseByID(courseID)
	if !exists {
		return false, ErrCourseNotFound
	}

	progress := s.store.Progress(userID)
	for _, materialID := range course.MaterialIDs() {
		if !progress.CompletedMaterials[materialID] {
			return false, nil
		}
	}
	return true, nil
}

func (s *userService) saveMirror(ctx context.Context, op string) {
	if s.mirror == nil {
		return
	}
	if err := s.mirror.Save(ctx, s.store.Snapshot()); err != nil {
		s.logger.Error("Failed to mirror store snapshot", "operation", op, "error", err)
	}
}
