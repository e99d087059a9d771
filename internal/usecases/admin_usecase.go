package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"realty-crm.backend/internal/domain/entities"
	domainerrors "realty-crm.backend/internal/domain/errors"
	"realty-crm.backend/internal/domain/repositories"
)

// PlatformStats is the admin dashboard summary
type PlatformStats struct {
	TotalUsers    int64 `json:"totalUsers"`
	TotalLeads    int64 `json:"totalLeads"`
	TotalBookings int64 `json:"totalBookings"`
}

// AdminUsecase handles platform administration
type AdminUsecase struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	leadRepo    repositories.LeadRepository
	bookingRepo repositories.BookingRepository
}

// NewAdminUsecase creates a new admin usecase
func NewAdminUsecase(
	userRepo repositories.UserRepository,
	sessionRepo repositories.SessionRepository,
	leadRepo repositories.LeadRepository,
	bookingRepo repositories.BookingRepository,
) *AdminUsecase {
	return &AdminUsecase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		leadRepo:    leadRepo,
		bookingRepo: bookingRepo,
	}
}

// ListUsers returns users matching an optional search term
func (u *AdminUsecase) ListUsers(ctx context.Context, search string, limit, offset int) ([]*entities.User, int64, error) {
	return u.userRepo.List(ctx, search, limit, offset)
}

// SetUserActive enables or disables an account. Disabling also revokes
// every session so the user is locked out immediately.
func (u *AdminUsecase) SetUserActive(ctx context.Context, id uuid.UUID, active bool) (*entities.User, error) {
	if err := u.userRepo.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, err
	}
	if !active {
		if err := u.sessionRepo.DeleteAllForUser(ctx, id); err != nil {
			return nil, err
		}
	}
	return u.userRepo.GetByID(ctx, id)
}

// Stats returns platform-wide counters
func (u *AdminUsecase) Stats(ctx context.Context) (*PlatformStats, error) {
	_, users, err := u.userRepo.List(ctx, "", 1, 0)
	if err != nil {
		return nil, err
	}
	leads, err := u.leadRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	bookings, err := u.bookingRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &PlatformStats{
		TotalUsers:    users,
		TotalLeads:    leads,
		TotalBookings: bookings,
	}, nil
}
