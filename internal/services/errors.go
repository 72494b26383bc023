package services

import (
	"errors"
	"fmt"

	apperrors "github.com/learnsphere/exam-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrConflict         = errors.New("resource conflict")

	// User specific errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user account is not active")

	// Course specific errors
	ErrCourseNotFound   = errors.New("course not found")
	ErrModuleNotFound   = errors.New("module not found")
	ErrMaterialNotFound = errors.New("material not found")
	ErrQuestionNotFound = errors.New("question not found")

	// Exam specific errors
	ErrExamNotFound    = errors.New("exam not found")
	ErrExamLocked      = errors.New("exam is locked until all course materials are completed")
	ErrExamEmpty       = errors.New("exam has no questions to draw from")
	ErrSessionNotFound = errors.New("exam session not found")
	ErrSessionActive   = errors.New("an exam session is already in progress")
	ErrResultNotFound  = errors.New("exam result not found")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// ===== ERROR HELPERS =====

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrCourseNotFound) ||
		errors.Is(err, ErrModuleNotFound) ||
		errors.Is(err, ErrMaterialNotFound) ||
		errors.Is(err, ErrQuestionNotFound) ||
		errors.Is(err, ErrExamNotFound) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrResultNotFound)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve apperrors.ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var single *apperrors.ValidationError
	return errors.As(err, &single)
}

// IsConflict checks if error represents a resource conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrEmailTaken) ||
		errors.Is(err, ErrSessionActive)
}

// IsForbidden checks if error represents a denied operation
func IsForbidden(err error) bool {
	return errors.Is(err, ErrExamLocked) ||
		errors.Is(err, ErrUserInactive) ||
		errors.Is(err, ErrInvalidCredentials)
}

// validationFailed converts validator library errors into the shared
// ValidationErrors type so callers can classify them.
func validationFailed(err error) error {
	if ve := apperrors.ToValidationErrors(err); len(ve) > 0 {
		return ve
	}
	return fmt.Errorf("%w: %v", ErrValidationFailed, err)
}
