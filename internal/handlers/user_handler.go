package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/learnsphere/exam-service/internal/models"
	"github.com/learnsphere/exam-service/internal/services"
	"github.com/learnsphere/exam-service/internal/utils"
)

type UserHandler struct {
	BaseHandler
	userService services.UserService
}

func NewUserHandler(userService services.UserService, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		userService: userService,
	}
}

// UserView is a user without credentials, as returned by the API.
type UserView struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	IsActive bool            `json:"isActive"`
	Role     models.UserRole `json:"role"`
}

func sanitizeUser(u models.User) UserView {
	return UserView{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		IsActive: u.IsActive,
		Role:     u.Role,
	}
}

// ListUsers returns every account, credentials stripped.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	views := make([]UserView, len(users))
	for i, u := range users {
		views[i] = sanitizeUser(u)
	}
	c.JSON(http.StatusOK, views)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sanitizeUser(*user))
}

type setActiveRequest struct {
	Active bool `json:"active"`
}

// SetActive toggles the account's activation flag.
func (h *UserHandler) SetActive(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	user, err := h.userService.SetActive(c.Request.Context(), id, req.Active)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sanitizeUser(*user))
}

// CompleteMaterial records that the user finished one course material.
func (h *UserHandler) CompleteMaterial(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}
	materialID := ParseStringIDParam(c, "material_id")
	if materialID == "" {
		return
	}

	if err := h.userService.MarkMaterialCompleted(c.Request.Context(), id, materialID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Material marked completed"})
}

func (h *UserHandler) GetProgress(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	progress, err := h.userService.Progress(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

// GetCourseCompletion reports whether the user may sit a locked exam.
func (h *UserHandler) GetCourseCompletion(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}
	courseID := ParseStringIDParam(c, "course_id")
	if courseID == "" {
		return
	}

	done, err := h.userService.HasCompletedAllMaterials(c.Request.Context(), id, courseID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"courseId": courseID, "completed": done})
}
