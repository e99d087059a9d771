package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"realty-crm.backend/internal/domain/entities"
	domainerrors "realty-crm.backend/internal/domain/errors"
)

func newUserFixture(email, referralCode string) *entities.User {
	now := time.Now().UTC()
	u := &entities.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: "$2a$12$fixturehash",
		FullName:     "Asha Verma",
		Role:         entities.UserRoleChannelPartner,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if referralCode != "" {
		u.ReferralCode = null.StringFrom(referralCode)
	}
	return u
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := newUserFixture("asha@example.com", "AV123456")
	require.NoError(t, repo.Create(ctx, user))

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, byID.Email)
	assert.Equal(t, entities.UserRoleChannelPartner, byID.Role)
	assert.True(t, byID.IsActive)

	byEmail, err := repo.GetByEmail(ctx, "asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byCode, err := repo.GetByReferralCode(ctx, "AV123456")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byCode.ID)
}

func TestUserRepository_GetMissingReturnsNotFound(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = repo.GetByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = repo.GetByReferralCode(context.Background(), "ZZ999999")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestUserRepository_DuplicateEmailFails(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUserFixture("dup@example.com", "AA111111")))
	err := repo.Create(ctx, newUserFixture("dup@example.com", "BB222222"))
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestUserRepository_DuplicateReferralCodeFails(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUserFixture("one@example.com", "CC333333")))
	err := repo.Create(ctx, newUserFixture("two@example.com", "CC333333"))
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestUserRepository_UpdateToTakenEmailFails(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUserFixture("taken@example.com", "")))
	other := newUserFixture("free@example.com", "")
	require.NoError(t, repo.Create(ctx, other))

	other.Email = "taken@example.com"
	assert.ErrorIs(t, repo.Update(ctx, other), domainerrors.ErrAlreadyExists)
}

func TestUserRepository_UpdatePasswordAndActive(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := newUserFixture("pw@example.com", "")
	require.NoError(t, repo.Create(ctx, user))

	require.NoError(t, repo.UpdatePassword(ctx, user.ID, "$2a$12$newhash"))
	updated, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "$2a$12$newhash", updated.PasswordHash)

	require.NoError(t, repo.SetActive(ctx, user.ID, false))
	updated, err = repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	assert.ErrorIs(t, repo.UpdatePassword(ctx, uuid.New(), "x"), domainerrors.ErrNotFound)
	assert.ErrorIs(t, repo.SetActive(ctx, uuid.New(), true), domainerrors.ErrNotFound)
}

func TestUserRepository_UpdateLastLogin(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := newUserFixture("login@example.com", "")
	require.NoError(t, repo.Create(ctx, user))

	at := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.UpdateLastLogin(ctx, user.ID, at))

	updated, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, updated.LastLoginAt.Valid)
	assert.WithinDuration(t, at, updated.LastLoginAt.Time, time.Second)
}

func TestUserRepository_ListWithSearch(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUserFixture("first@example.com", "")))
	require.NoError(t, repo.Create(ctx, newUserFixture("second@example.com", "")))
	require.NoError(t, repo.Create(ctx, newUserFixture("third@other.org", "")))

	users, total, err := repo.List(ctx, "", 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, users, 3)

	users, total, err = repo.List(ctx, "example.com", 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, users, 2)

	users, total, err = repo.List(ctx, "", 2, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, users, 2)
}
