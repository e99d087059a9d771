package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"realty-crm.backend/internal/domain/entities"
	domainerrors "realty-crm.backend/internal/domain/errors"
	"realty-crm.backend/internal/usecases"
)

type bookingMocks struct {
	bookingRepo  *MockBookingRepository
	paymentRepo  *MockPaymentRepository
	leadRepo     *MockLeadRepository
	unitRepo     *MockUnitRepository
	activityRepo *MockActivityRepository
}

func newBookingUsecase() (*usecases.BookingUsecase, *bookingMocks) {
	m := &bookingMocks{
		bookingRepo:  new(MockBookingRepository),
		paymentRepo:  new(MockPaymentRepository),
		leadRepo:     new(MockLeadRepository),
		unitRepo:     new(MockUnitRepository),
		activityRepo: new(MockActivityRepository),
	}
	uc := usecases.NewBookingUsecase(m.bookingRepo, m.paymentRepo, m.leadRepo, m.unitRepo, m.activityRepo)
	return uc, m
}

func TestCreateBooking_ReservesUnit(t *testing.T) {
	uc, m := newBookingUsecase()
	ctx := context.Background()

	lead := &entities.Lead{ID: uuid.New()}
	unit := &entities.Unit{ID: uuid.New(), Status: entities.UnitStatusAvailable, Price: 4500000}
	actorID := uuid.New()

	m.leadRepo.On("GetByID", ctx, lead.ID).Return(lead, nil)
	m.unitRepo.On("GetByID", ctx, unit.ID).Return(unit, nil)
	m.bookingRepo.On("Create", ctx, mock.AnythingOfType("*entities.Booking")).Return(nil)
	m.unitRepo.On("UpdateStatus", ctx, unit.ID, entities.UnitStatusReserved).Return(nil)
	m.activityRepo.On("Create", ctx, mock.AnythingOfType("*entities.Activity")).Return(nil)

	booking, err := uc.Create(ctx, actorID, &entities.CreateBookingInput{
		LeadID: lead.ID.String(),
		UnitID: unit.ID.String(),
		Amount: 4500000,
	})
	require.NoError(t, err)
	assert.Equal(t, entities.BookingStatusPending, booking.Status)
	assert.Equal(t, actorID, booking.BookedBy)
	m.unitRepo.AssertCalled(t, "UpdateStatus", ctx, unit.ID, entities.UnitStatusReserved)
}

func TestCreateBooking_UnavailableUnitConflicts(t *testing.T) {
	uc, m := newBookingUsecase()
	ctx := context.Background()

	lead := &entities.Lead{ID: uuid.New()}
	unit := &entities.Unit{ID: uuid.New(), Status: entities.UnitStatusBooked}

	m.leadRepo.On("GetByID", ctx, lead.ID).Return(lead, nil)
	m.unitRepo.On("GetByID", ctx, unit.ID).Return(unit, nil)

	_, err := uc.Create(ctx, uuid.New(), &entities.CreateBookingInput{
		LeadID: lead.ID.String(),
		UnitID: unit.ID.String(),
		Amount: 1000000,
	})
	requireAppErrorCode(t, err, domainerrors.CodeConflict)
	m.bookingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBooking_BadIDs(t *testing.T) {
	uc, _ := newBookingUsecase()

	_, err := uc.Create(context.Background(), uuid.New(), &entities.CreateBookingInput{
		LeadID: "nope",
		UnitID: uuid.New().String(),
		Amount: 1,
	})
	requireAppErrorCode(t, err, domainerrors.CodeValidationError)
}

func TestUpdateBookingStatus_LifecycleFlipsUnit(t *testing.T) {
	cases := []struct {
		name       string
		status     entities.BookingStatus
		unitStatus entities.UnitStatus
	}{
		{"confirm books unit", entities.BookingStatusConfirmed, entities.UnitStatusBooked},
		{"complete sells unit", entities.BookingStatusCompleted, entities.UnitStatusSold},
		{"cancel releases unit", entities.BookingStatusCancelled, entities.UnitStatusAvailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, m := newBookingUsecase()
			ctx := context.Background()

			booking := &entities.Booking{
				ID:     uuid.New(),
				UnitID: uuid.New(),
				Status: entities.BookingStatusPending,
			}
			m.bookingRepo.On("GetByID", ctx, booking.ID).Return(booking, nil)
			m.bookingRepo.On("UpdateStatus", ctx, booking.ID, tc.status).Return(nil)
			m.unitRepo.On("UpdateStatus", ctx, booking.UnitID, tc.unitStatus).Return(nil)
			m.activityRepo.On("Create", ctx, mock.AnythingOfType("*entities.Activity")).Return(nil)

			updated, err := uc.UpdateStatus(ctx, uuid.New(), booking.ID, &entities.UpdateBookingStatusInput{
				Status: string(tc.status),
			})
			require.NoError(t, err)
			assert.Equal(t, tc.status, updated.Status)
			m.unitRepo.AssertCalled(t, "UpdateStatus", ctx, booking.UnitID, tc.unitStatus)
		})
	}
}

func TestUpdateBookingStatus_NoopWhenUnchanged(t *testing.T) {
	uc, m := newBookingUsecase()
	ctx := context.Background()

	booking := &entities.Booking{ID: uuid.New(), Status: entities.BookingStatusPending}
	m.bookingRepo.On("GetByID", ctx, booking.ID).Return(booking, nil)

	_, err := uc.UpdateStatus(ctx, uuid.New(), booking.ID, &entities.UpdateBookingStatusInput{
		Status: "pending",
	})
	require.NoError(t, err)
	m.bookingRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordPayment(t *testing.T) {
	uc, m := newBookingUsecase()
	ctx := context.Background()

	booking := &entities.Booking{ID: uuid.New(), Status: entities.BookingStatusConfirmed}
	m.bookingRepo.On("GetByID", ctx, booking.ID).Return(booking, nil)
	m.paymentRepo.On("Create", ctx, mock.AnythingOfType("*entities.Payment")).Return(nil)
	m.activityRepo.On("Create", ctx, mock.AnythingOfType("*entities.Activity")).Return(nil)

	payment, err := uc.RecordPayment(ctx, uuid.New(), booking.ID, &entities.RecordPaymentInput{
		Amount:    500000,
		Mode:      "upi",
		Reference: "TXN-42",
	})
	require.NoError(t, err)
	assert.Equal(t, entities.PaymentModeUPI, payment.Mode)
	assert.Equal(t, "TXN-42", payment.Reference.String)
	assert.False(t, payment.PaidAt.IsZero())
}

func TestRecordPayment_CancelledBookingRejected(t *testing.T) {
	uc, m := newBookingUsecase()
	ctx := context.Background()

	booking := &entities.Booking{ID: uuid.New(), Status: entities.BookingStatusCancelled}
	m.bookingRepo.On("GetByID", ctx, booking.ID).Return(booking, nil)

	_, err := uc.RecordPayment(ctx, uuid.New(), booking.ID, &entities.RecordPaymentInput{
		Amount: 100,
		Mode:   "cash",
	})
	requireAppErrorCode(t, err, domainerrors.CodeConflict)
	m.paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
