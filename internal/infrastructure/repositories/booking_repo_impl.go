package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"realty-crm.backend/internal/domain/entities"
	domainerrors "realty-crm.backend/internal/domain/errors"
	"realty-crm.backend/internal/domain/repositories"
	"realty-crm.backend/internal/infrastructure/models"
)

type bookingRepositoryImpl struct {
	db *gorm.DB
}

// NewBookingRepository creates a GORM-backed booking repository.
func NewBookingRepository(db *gorm.DB) repositories.BookingRepository {
	return &bookingRepositoryImpl{db: db}
}

func (r *bookingRepositoryImpl) Create(ctx context.Context, booking *entities.Booking) error {
	return r.db.WithContext(ctx).Create(toBookingModel(booking)).Error
}

func (r *bookingRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Booking, error) {
	var model models.Booking
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toBookingEntity(&model), nil
}

func (r *bookingRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.BookingStatus) error {
	result := r.db.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *bookingRepositoryImpl) List(ctx context.Context, bookedBy *uuid.UUID, limit, offset int) ([]*entities.Booking, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Booking{})
	if bookedBy != nil {
		query = query.Where("booked_by = ?", *bookedBy)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Booking
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	bookings := make([]*entities.Booking, 0, len(rows))
	for i := range rows {
		bookings = append(bookings, toBookingEntity(&rows[i]))
	}
	return bookings, total, nil
}

func (r *bookingRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Booking{}).Count(&total).Error
	return total, err
}

func toBookingModel(b *entities.Booking) *models.Booking {
	return &models.Booking{
		ID:        b.ID,
		LeadID:    b.LeadID,
		UnitID:    b.UnitID,
		Amount:    b.Amount,
		Status:    string(b.Status),
		BookedBy:  b.BookedBy,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func toBookingEntity(m *models.Booking) *entities.Booking {
	return &entities.Booking{
		ID:        m.ID,
		LeadID:    m.LeadID,
		UnitID:    m.UnitID,
		Amount:    m.Amount,
		Status:    entities.BookingStatus(m.Status),
		BookedBy:  m.BookedBy,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

type paymentRepositoryImpl struct {
	db *gorm.DB
}

// NewPaymentRepository creates a GORM-backed payment repository.
func NewPaymentRepository(db *gorm.DB) repositories.PaymentRepository {
	return &paymentRepositoryImpl{db: db}
}

func (r *paymentRepositoryImpl) Create(ctx context.Context, payment *entities.Payment) error {
	model := &models.Payment{
		ID:        payment.ID,
		BookingID: payment.BookingID,
		Amount:    payment.Amount,
		Mode:      string(payment.Mode),
		Reference: payment.Reference.Ptr(),
		PaidAt:    payment.PaidAt,
		CreatedAt: payment.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(model).Error
}

func (r *paymentRepositoryImpl) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*entities.Payment, error) {
	var rows []models.Payment
	if err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("paid_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	payments := make([]*entities.Payment, 0, len(rows))
	for i := range rows {
		m := rows[i]
		payments = append(payments, &entities.Payment{
			ID:        m.ID,
			BookingID: m.BookingID,
			Amount:    m.Amount,
			Mode:      entities.PaymentMode(m.Mode),
			Reference: null.StringFromPtr(m.Reference),
			PaidAt:    m.PaidAt,
			CreatedAt: m.CreatedAt,
		})
	}
	return payments, nil
}
