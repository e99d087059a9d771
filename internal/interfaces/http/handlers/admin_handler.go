package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"realty-crm.backend/internal/domain/entities"
	domainerrors "realty-crm.backend/internal/domain/errors"
	"realty-crm.backend/internal/interfaces/http/response"
	"realty-crm.backend/internal/usecases"
	"realty-crm.backend/pkg/utils"
)

type adminService interface {
	ListUsers(ctx context.Context, search string, limit, offset int) ([]*entities.User, int64, error)
	SetUserActive(ctx context.Context, id uuid.UUID, active bool) (*entities.User, error)
	Stats(ctx context.Context) (*usecases.PlatformStats, error)
}

// AdminHandler handles platform administration endpoints
type AdminHandler struct {
	admin adminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(admin adminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// ListUsers lists users with optional search
// GET /api/v1/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	params := paginationFromQuery(c)
	users, total, err := h.admin.ListUsers(c.Request.Context(), c.Query("search"), params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	profiles := make([]*entities.UserProfile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, u.Profile())
	}

	response.SuccessWithMeta(c, http.StatusOK, gin.H{"users": profiles}, utils.CalculateMeta(total, params.Page, params.Limit))
}

// SetUserActive enables or disables an account. Disabling also revokes
// every session the user holds.
// PUT /api/v1/admin/users/:id/active
func (h *AdminHandler) SetUserActive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid user id"))
		return
	}

	var input struct {
		IsActive *bool `json:"isActive" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	user, err := h.admin.SetUserActive(c.Request.Context(), id, *input.IsActive)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user.Profile()})
}

// Stats returns platform-wide counters
// GET /api/v1/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.admin.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}
