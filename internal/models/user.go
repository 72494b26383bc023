package models

type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

type User struct {
	ID    string   `json:"id"`
	Name  string   `json:"name" validate:"required,min=1,max=100"`
	Email string   `json:"email" validate:"required,email"`
	// Password is stored and compared in plaintext. This mirrors the
	// original client-side data model; real credential handling is a
	// non-goal of this service.
	Password string   `json:"password,omitempty"`
	IsActive bool     `json:"isActive"`
	Role     UserRole `json:"role" validate:"omitempty,user_role"`
}

// UserProgress tracks which materials a user has completed, keyed by
// material id.
type UserProgress struct {
	CompletedMaterials map[string]bool `json:"completedMaterials"`
}

func NewUserProgress() UserProgress {
	return UserProgress{CompletedMaterials: make(map[string]bool)}
}
