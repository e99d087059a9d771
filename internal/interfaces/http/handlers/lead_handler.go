package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"realty-crm.backend/internal/domain/entities"
	domainerrors "realty-crm.backend/internal/domain/errors"
	"realty-crm.backend/internal/interfaces/http/middleware"
	"realty-crm.backend/internal/interfaces/http/response"
	"realty-crm.backend/pkg/utils"
)

type leadService interface {
	PublicIntake(ctx context.Context, input *entities.PublicLeadInput) (*entities.Lead, error)
	List(ctx context.Context, actor *entities.User, status *entities.LeadStatus, limit, offset int) ([]*entities.Lead, int64, error)
	Get(ctx context.Context, actor *entities.User, id uuid.UUID) (*entities.Lead, error)
	Update(ctx context.Context, actor *entities.User, id uuid.UUID, input *entities.UpdateLeadInput) (*entities.Lead, error)
	CreateFollowUp(ctx context.Context, actor *entities.User, leadID uuid.UUID, input *entities.CreateFollowUpInput) (*entities.FollowUp, error)
	UpdateFollowUp(ctx context.Context, actor *entities.User, id uuid.UUID, input *entities.UpdateFollowUpInput) (*entities.FollowUp, error)
	ListFollowUps(ctx context.Context, actor *entities.User, leadID uuid.UUID) ([]*entities.FollowUp, error)
	ListActivities(ctx context.Context, actor *entities.User, leadID uuid.UUID) ([]*entities.Activity, error)
}

// LeadHandler handles lead endpoints
type LeadHandler struct {
	leads leadService
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(leads leadService) *LeadHandler {
	return &LeadHandler{leads: leads}
}

// PublicIntake accepts an unauthenticated lead submission
// POST /api/v1/leads/public
func (h *LeadHandler) PublicIntake(c *gin.Context) {
	var input entities.PublicLeadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	lead, err := h.leads.PublicIntake(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Thank you for your interest. Our team will contact you shortly."
	if lead.Source == entities.LeadSourceReferral {
		message = "Thank you for your interest. Your channel partner will be in touch shortly."
	}

	response.Success(c, http.StatusCreated, gin.H{
		"id":      lead.ID,
		"status":  lead.Status,
		"source":  lead.Source,
		"message": message,
	})
}

// List returns leads visible to the caller
// GET /api/v1/leads
func (h *LeadHandler) List(c *gin.Context) {
	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized(domainerrors.CodeUnauthorized, "authentication required"))
		return
	}

	var status *entities.LeadStatus
	if raw := c.Query("status"); raw != "" {
		s := entities.LeadStatus(raw)
		if !s.Valid() {
			response.Error(c, domainerrors.BadRequestCode(domainerrors.CodeInvalidStatus, "unknown lead status"))
			return
		}
		status = &s
	}

	params := paginationFromQuery(c)
	leads, total, err := h.leads.List(c.Request.Context(), actor, status, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, gin.H{"leads": leads}, utils.CalculateMeta(total, params.Page, params.Limit))
}

// Get returns a single lead
// GET /api/v1/leads/:id
func (h *LeadHandler) Get(c *gin.Context) {
	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized(domainerrors.CodeUnauthorized, "authentication required"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid lead id"))
		return
	}

	lead, err := h.leads.Get(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"lead": lead})
}

// Update applies a partial lead update
// PUT /api/v1/leads/:id
func (h *LeadHandler) Update(c *gin.Context) {
	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized(domainerrors.CodeUnauthorized, "authentication required"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid lead id"))
		return
	}

	var input entities.UpdateLeadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	lead, err := h.leads.Update(c.Request.Context(), actor, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"lead": lead})
}

// CreateFollowUp schedules a follow-up on a lead
// POST /api/v1/leads/:id/follow-ups
func (h *LeadHandler) CreateFollowUp(c *gin.Context) {
	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized(domainerrors.CodeUnauthorized, "authentication required"))
		return
	}

	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid lead id"))
		return
	}

	var input entities.CreateFollowUpInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	followUp, err := h.leads.CreateFollowUp(c.Request.Context(), actor, leadID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"followUp": followUp})
}

// ListFollowUps lists follow-ups on a lead
// GET /api/v1/leads/:id/follow-ups
func (h *LeadHandler) ListFollowUps(c *gin.Context) {
	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized(domainerrors.CodeUnauthorized, "authentication required"))
		return
	}

	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid lead id"))
		return
	}

	followUps, err := h.leads.ListFollowUps(c.Request.Context(), actor, leadID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"followUps": followUps})
}

// UpdateFollowUp applies a partial follow-up update
// PUT /api/v1/follow-ups/:id
func (h *LeadHandler) UpdateFollowUp(c *gin.Context) {
	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized(domainerrors.CodeUnauthorized, "authentication required"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid follow-up id"))
		return
	}

	var input entities.UpdateFollowUpInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	followUp, err := h.leads.UpdateFollowUp(c.Request.Context(), actor, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"followUp": followUp})
}

// ListActivities returns the audit trail of a lead
// GET /api/v1/leads/:id/activities
func (h *LeadHandler) ListActivities(c *gin.Context) {
	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized(domainerrors.CodeUnauthorized, "authentication required"))
		return
	}

	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid lead id"))
		return
	}

	activities, err := h.leads.ListActivities(c.Request.Context(), actor, leadID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"activities": activities})
}

// paginationFromQuery reads page and limit query parameters
func paginationFromQuery(c *gin.Context) utils.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	return utils.GetPaginationParams(page, limit)
}
