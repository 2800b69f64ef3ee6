package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/HammadCopilot/star-video-review/internal/errors"
	"github.com/HammadCopilot/star-video-review/internal/models"
	"github.com/HammadCopilot/star-video-review/internal/pagination"
	"github.com/HammadCopilot/star-video-review/internal/services"
)

// UserHandler handles admin user management requests.
type UserHandler struct {
	userService  services.UserServicer
	auditService services.AuditServicer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService services.UserServicer, auditService services.AuditServicer) *UserHandler {
	return &UserHandler{userService: userService, auditService: auditService}
}

// CreateUserRequest represents the admin user creation payload
type CreateUserRequest struct {
	Email     string      `json:"email" binding:"required,email,max=120"`
	Password  string      `json:"password" binding:"required,min=8,max=128"`
	FirstName string      `json:"first_name" binding:"max=50"`
	LastName  string      `json:"last_name" binding:"max=50"`
	Role      models.Role `json:"role" binding:"omitempty,user_role"`
}

// UpdateUserRequest represents the user update payload
type UpdateUserRequest struct {
	FirstName *string      `json:"first_name" binding:"omitempty,max=50"`
	LastName  *string      `json:"last_name" binding:"omitempty,max=50"`
	Password  *string      `json:"password" binding:"omitempty,min=8,max=128"`
	Role      *models.Role `json:"role" binding:"omitempty,user_role"`
	IsActive  *bool        `json:"is_active"`
}

// CreateUser creates a user with an explicit role. Admin only.
func (h *UserHandler) CreateUser(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.CreateUser(req.Email, req.Password, req.FirstName, req.LastName, req.Role)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actorID, "user_created", "user", user.ID, c.ClientIP(),
		map[string]interface{}{"email": user.Email, "role": user.Role})

	c.JSON(http.StatusCreated, gin.H{"user": userPayload(user)})
}

// ListUsers returns a paginated list of users. Admin only.
func (h *UserHandler) ListUsers(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	users, err := h.userService.ListUsers(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// GetUser returns a single user by ID. Admin only.
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userPayload(user)})
}

// UpdateUser updates a user's profile, role, or active flag. Users may edit
// their own profile; role and active changes require admin.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	actorRole, err := getRole(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	targetID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.UpdateUser(actorID, actorRole, targetID, services.UserUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
		Role:      req.Role,
		IsActive:  req.IsActive,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actorID, "user_updated", "user", user.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"user": userPayload(user)})
}

// DeleteUser removes a user. Admin only; self-deletion is rejected.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	targetID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.userService.DeleteUser(actorID, targetID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actorID, "user_deleted", "user", targetID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
