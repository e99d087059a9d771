package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"realty-crm.backend/internal/domain/entities"
	domainerrors "realty-crm.backend/internal/domain/errors"
	"realty-crm.backend/internal/domain/repositories"
	"realty-crm.backend/pkg/utils"
)

// BookingUsecase ties leads to units and tracks money received
type BookingUsecase struct {
	bookingRepo  repositories.BookingRepository
	paymentRepo  repositories.PaymentRepository
	leadRepo     repositories.LeadRepository
	unitRepo     repositories.UnitRepository
	activityRepo repositories.ActivityRepository
}

// NewBookingUsecase creates a new booking usecase
func NewBookingUsecase(
	bookingRepo repositories.BookingRepository,
	paymentRepo repositories.PaymentRepository,
	leadRepo repositories.LeadRepository,
	unitRepo repositories.UnitRepository,
	activityRepo repositories.ActivityRepository,
) *BookingUsecase {
	return &BookingUsecase{
		bookingRepo:  bookingRepo,
		paymentRepo:  paymentRepo,
		leadRepo:     leadRepo,
		unitRepo:     unitRepo,
		activityRepo: activityRepo,
	}
}

// Create opens a booking for an available unit and reserves it
func (u *BookingUsecase) Create(ctx context.Context, actorID uuid.UUID, input *entities.CreateBookingInput) (*entities.Booking, error) {
	leadID, err := uuid.Parse(input.LeadID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid lead id")
	}
	unitID, err := uuid.Parse(input.UnitID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid unit id")
	}

	if _, err := u.leadRepo.GetByID(ctx, leadID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("lead not found")
		}
		return nil, err
	}

	unit, err := u.unitRepo.GetByID(ctx, unitID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("unit not found")
		}
		return nil, err
	}
	if unit.Status != entities.UnitStatusAvailable {
		return nil, domainerrors.Conflict("unit is not available")
	}

	booking := &entities.Booking{
		ID:       utils.GenerateUUIDv7(),
		LeadID:   leadID,
		UnitID:   unitID,
		Amount:   input.Amount,
		Status:   entities.BookingStatusPending,
		BookedBy: actorID,
	}
	if err := u.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	if err := u.unitRepo.UpdateStatus(ctx, unitID, entities.UnitStatusReserved); err != nil {
		return nil, err
	}

	u.recordBookingActivity(ctx, booking.ID, "booking.created",
		fmt.Sprintf("lead=%s unit=%s", leadID, unitID), actorID)

	return booking, nil
}

// Get returns a booking by ID
func (u *BookingUsecase) Get(ctx context.Context, id uuid.UUID) (*entities.Booking, error) {
	booking, err := u.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("booking not found")
		}
		return nil, err
	}
	return booking, nil
}

// List returns bookings, optionally scoped to their creator
func (u *BookingUsecase) List(ctx context.Context, bookedBy *uuid.UUID, limit, offset int) ([]*entities.Booking, int64, error) {
	return u.bookingRepo.List(ctx, bookedBy, limit, offset)
}

// UpdateStatus moves a booking through its lifecycle and keeps the unit
// status in step: confirmation books the unit, completion sells it, and
// cancellation releases it.
func (u *BookingUsecase) UpdateStatus(ctx context.Context, actorID uuid.UUID, id uuid.UUID, input *entities.UpdateBookingStatusInput) (*entities.Booking, error) {
	status := entities.BookingStatus(input.Status)
	if !status.Valid() {
		return nil, domainerrors.BadRequestCode(domainerrors.CodeInvalidStatus, "unknown booking status")
	}

	booking, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.Status == status {
		return booking, nil
	}

	if err := u.bookingRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	var unitStatus entities.UnitStatus
	switch status {
	case entities.BookingStatusConfirmed:
		unitStatus = entities.UnitStatusBooked
	case entities.BookingStatusCompleted:
		unitStatus = entities.UnitStatusSold
	case entities.BookingStatusCancelled:
		unitStatus = entities.UnitStatusAvailable
	}
	if unitStatus != "" {
		if err := u.unitRepo.UpdateStatus(ctx, booking.UnitID, unitStatus); err != nil {
			return nil, err
		}
	}

	u.recordBookingActivity(ctx, booking.ID, "booking.status_changed",
		fmt.Sprintf("%s -> %s", booking.Status, status), actorID)

	booking.Status = status
	return booking, nil
}

// RecordPayment records money received against a booking
func (u *BookingUsecase) RecordPayment(ctx context.Context, actorID uuid.UUID, bookingID uuid.UUID, input *entities.RecordPaymentInput) (*entities.Payment, error) {
	booking, err := u.Get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status == entities.BookingStatusCancelled {
		return nil, domainerrors.Conflict("booking is cancelled")
	}

	paidAt := time.Now().UTC()
	if input.PaidAt != nil {
		paidAt = *input.PaidAt
	}

	payment := &entities.Payment{
		ID:        utils.GenerateUUIDv7(),
		BookingID: bookingID,
		Amount:    input.Amount,
		Mode:      entities.PaymentMode(input.Mode),
		PaidAt:    paidAt,
	}
	if input.Reference != "" {
		payment.Reference = null.StringFrom(input.Reference)
	}

	if err := u.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	u.recordBookingActivity(ctx, bookingID, "payment.recorded",
		fmt.Sprintf("amount=%.2f mode=%s", input.Amount, input.Mode), actorID)

	return payment, nil
}

// ListPayments returns the payments recorded against a booking
func (u *BookingUsecase) ListPayments(ctx context.Context, bookingID uuid.UUID) ([]*entities.Payment, error) {
	if _, err := u.Get(ctx, bookingID); err != nil {
		return nil, err
	}
	return u.paymentRepo.ListByBooking(ctx, bookingID)
}

func (u *BookingUsecase) recordBookingActivity(ctx context.Context, bookingID uuid.UUID, action, detail string, actorID uuid.UUID) {
	_ = u.activityRepo.Create(ctx, &entities.Activity{
		ID:         utils.GenerateUUIDv7(),
		EntityType: entities.ActivityEntityBooking,
		EntityID:   bookingID,
		Action:     action,
		Detail:     detail,
		ActorID:    uuid.NullUUID{UUID: actorID, Valid: true},
	})
}
