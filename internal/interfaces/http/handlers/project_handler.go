package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"realty-crm.backend/internal/domain/entities"
	domainerrors "realty-crm.backend/internal/domain/errors"
	"realty-crm.backend/internal/interfaces/http/middleware"
	"realty-crm.backend/internal/interfaces/http/response"
	"realty-crm.backend/pkg/utils"
)

type projectService interface {
	Create(ctx context.Context, actorID uuid.UUID, input *entities.CreateProjectInput) (*entities.Project, error)
	Get(ctx context.Context, id uuid.UUID) (*entities.Project, error)
	List(ctx context.Context, limit, offset int) ([]*entities.Project, int64, error)
	Update(ctx context.Context, id uuid.UUID, input *entities.UpdateProjectInput) (*entities.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddUnit(ctx context.Context, projectID uuid.UUID, input *entities.CreateUnitInput) (*entities.Unit, error)
	ListUnits(ctx context.Context, projectID uuid.UUID) ([]*entities.Unit, error)
	UpdateUnit(ctx context.Context, id uuid.UUID, input *entities.UpdateUnitInput) (*entities.Unit, error)
}

// ProjectHandler handles project and unit endpoints
type ProjectHandler struct {
	projects projectService
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projects projectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// Create creates a project
// POST /api/v1/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized(domainerrors.CodeUnauthorized, "authentication required"))
		return
	}

	var input entities.CreateProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	project, err := h.projects.Create(c.Request.Context(), actorID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"project": project})
}

// Get returns a single project
// GET /api/v1/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid project id"))
		return
	}

	project, err := h.projects.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"project": project})
}

// List returns projects
// GET /api/v1/projects
func (h *ProjectHandler) List(c *gin.Context) {
	params := paginationFromQuery(c)
	projects, total, err := h.projects.List(c.Request.Context(), params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, gin.H{"projects": projects}, utils.CalculateMeta(total, params.Page, params.Limit))
}

// Update applies a partial project update
// PUT /api/v1/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid project id"))
		return
	}

	var input entities.UpdateProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	project, err := h.projects.Update(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"project": project})
}

// Delete removes a project
// DELETE /api/v1/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid project id"))
		return
	}

	if err := h.projects.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "project deleted"})
}

// AddUnit adds a unit to a project
// POST /api/v1/projects/:id/units
func (h *ProjectHandler) AddUnit(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid project id"))
		return
	}

	var input entities.CreateUnitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	unit, err := h.projects.AddUnit(c.Request.Context(), projectID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"unit": unit})
}

// ListUnits lists the units of a project
// GET /api/v1/projects/:id/units
func (h *ProjectHandler) ListUnits(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid project id"))
		return
	}

	units, err := h.projects.ListUnits(c.Request.Context(), projectID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"units": units})
}

// UpdateUnit applies a partial unit update
// PUT /api/v1/units/:id
func (h *ProjectHandler) UpdateUnit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid unit id"))
		return
	}

	var input entities.UpdateUnitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	unit, err := h.projects.UpdateUnit(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"unit": unit})
}
