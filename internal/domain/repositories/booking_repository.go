package repositories

import (
	"context"

	"github.com/google/uuid"
	"realty-crm.backend/internal/domain/entities"
)

// BookingRepository defines booking data operations. When agentID is
// non-nil, List is scoped to bookings whose lead is assigned to that agent.
type BookingRepository interface {
	Create(ctx context.Context, booking *entities.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.BookingStatus) error
	List(ctx context.Context, agentID *uuid.UUID, limit, offset int) ([]*entities.Booking, int64, error)
	Count(ctx context.Context) (int64, error)
}

// PaymentRepository defines payment data operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *entities.Payment) error
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*entities.Payment, error)
}
