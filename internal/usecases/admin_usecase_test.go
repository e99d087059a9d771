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

type adminMocks struct {
	userRepo    *MockUserRepository
	sessionRepo *MockSessionRepository
	leadRepo    *MockLeadRepository
	bookingRepo *MockBookingRepository
}

func newAdminUsecase() (*usecases.AdminUsecase, *adminMocks) {
	m := &adminMocks{
		userRepo:    new(MockUserRepository),
		sessionRepo: new(MockSessionRepository),
		leadRepo:    new(MockLeadRepository),
		bookingRepo: new(MockBookingRepository),
	}
	return usecases.NewAdminUsecase(m.userRepo, m.sessionRepo, m.leadRepo, m.bookingRepo), m
}

func TestSetUserActive_DisableRevokesSessions(t *testing.T) {
	uc, m := newAdminUsecase()
	ctx := context.Background()

	id := uuid.New()
	disabled := &entities.User{ID: id, IsActive: false}
	m.userRepo.On("SetActive", ctx, id, false).Return(nil)
	m.sessionRepo.On("DeleteAllForUser", ctx, id).Return(nil)
	m.userRepo.On("GetByID", ctx, id).Return(disabled, nil)

	user, err := uc.SetUserActive(ctx, id, false)
	require.NoError(t, err)
	assert.False(t, user.IsActive)
	m.sessionRepo.AssertCalled(t, "DeleteAllForUser", ctx, id)
}

func TestSetUserActive_EnableKeepsSessions(t *testing.T) {
	uc, m := newAdminUsecase()
	ctx := context.Background()

	id := uuid.New()
	enabled := &entities.User{ID: id, IsActive: true}
	m.userRepo.On("SetActive", ctx, id, true).Return(nil)
	m.userRepo.On("GetByID", ctx, id).Return(enabled, nil)

	_, err := uc.SetUserActive(ctx, id, true)
	require.NoError(t, err)
	m.sessionRepo.AssertNotCalled(t, "DeleteAllForUser", mock.Anything, mock.Anything)
}

func TestSetUserActive_UnknownUser(t *testing.T) {
	uc, m := newAdminUsecase()
	ctx := context.Background()

	id := uuid.New()
	m.userRepo.On("SetActive", ctx, id, false).Return(domainerrors.ErrNotFound)

	_, err := uc.SetUserActive(ctx, id, false)
	requireAppErrorCode(t, err, domainerrors.CodeNotFound)
}

func TestStats(t *testing.T) {
	uc, m := newAdminUsecase()
	ctx := context.Background()

	m.userRepo.On("List", ctx, "", 1, 0).Return([]*entities.User{}, int64(12), nil)
	m.leadRepo.On("Count", ctx).Return(int64(40), nil)
	m.bookingRepo.On("Count", ctx).Return(int64(7), nil)

	stats, err := uc.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 12, stats.TotalUsers)
	assert.EqualValues(t, 40, stats.TotalLeads)
	assert.EqualValues(t, 7, stats.TotalBookings)
}
