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

type bookingService interface {
	Create(ctx context.Context, actorID uuid.UUID, input *entities.CreateBookingInput) (*entities.Booking, error)
	Get(ctx context.Context, id uuid.UUID) (*entities.Booking, error)
	List(ctx context.Context, bookedBy *uuid.UUID, limit, offset int) ([]*entities.Booking, int64, error)
	UpdateStatus(ctx context.Context, actorID uuid.UUID, id uuid.UUID, input *entities.UpdateBookingStatusInput) (*entities.Booking, error)
	RecordPayment(ctx context.Context, actorID uuid.UUID, bookingID uuid.UUID, input *entities.RecordPaymentInput) (*entities.Payment, error)
	ListPayments(ctx context.Context, bookingID uuid.UUID) ([]*entities.Payment, error)
}

// BookingHandler handles booking and payment endpoints
type BookingHandler struct {
	bookings bookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookings bookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// Create books a unit for a lead
// POST /api/v1/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized(domainerrors.CodeUnauthorized, "authentication required"))
		return
	}

	var input entities.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	booking, err := h.bookings.Create(c.Request.Context(), actorID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": booking})
}

// Get returns a single booking
// GET /api/v1/bookings/:id
func (h *BookingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid booking id"))
		return
	}

	booking, err := h.bookings.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": booking})
}

// List returns bookings. Staff see all bookings, other roles only the
// ones they created.
// GET /api/v1/bookings
func (h *BookingHandler) List(c *gin.Context) {
	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized(domainerrors.CodeUnauthorized, "authentication required"))
		return
	}

	var bookedBy *uuid.UUID
	if actor.Role != entities.UserRoleAdmin && actor.Role != entities.UserRoleBuilder {
		bookedBy = &actor.ID
	}

	params := paginationFromQuery(c)
	bookings, total, err := h.bookings.List(c.Request.Context(), bookedBy, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, gin.H{"bookings": bookings}, utils.CalculateMeta(total, params.Page, params.Limit))
}

// UpdateStatus moves a booking through its lifecycle
// PUT /api/v1/bookings/:id/status
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized(domainerrors.CodeUnauthorized, "authentication required"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid booking id"))
		return
	}

	var input entities.UpdateBookingStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	booking, err := h.bookings.UpdateStatus(c.Request.Context(), actorID, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": booking})
}

// RecordPayment records a payment against a booking
// POST /api/v1/bookings/:id/payments
func (h *BookingHandler) RecordPayment(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized(domainerrors.CodeUnauthorized, "authentication required"))
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid booking id"))
		return
	}

	var input entities.RecordPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	payment, err := h.bookings.RecordPayment(c.Request.Context(), actorID, bookingID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"payment": payment})
}

// ListPayments lists payments on a booking
// GET /api/v1/bookings/:id/payments
func (h *BookingHandler) ListPayments(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid booking id"))
		return
	}

	payments, err := h.bookings.ListPayments(c.Request.Context(), bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"payments": payments})
}
