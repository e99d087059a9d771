package usecases_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"realty-crm.backend/internal/domain/entities"
	domainerrors "realty-crm.backend/internal/domain/errors"
	"realty-crm.backend/internal/usecases"
	"realty-crm.backend/pkg/crypto"
	"realty-crm.backend/pkg/jwt"
)

func sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func newTestJWTService() *jwt.JWTService {
	return jwt.NewJWTService("test-secret", 15*time.Minute, 7*24*time.Hour)
}

type authMocks struct {
	userRepo    *MockUserRepository
	sessionRepo *MockSessionRepository
	agentRepo   *MockAgentRepository
}

func newAuthUsecase() (*usecases.AuthUsecase, *authMocks) {
	m := &authMocks{
		userRepo:    new(MockUserRepository),
		sessionRepo: new(MockSessionRepository),
		agentRepo:   new(MockAgentRepository),
	}
	uc := usecases.NewAuthUsecase(m.userRepo, m.sessionRepo, m.agentRepo, newTestJWTService())
	return uc, m
}

func requireAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

func TestSignup_ChannelPartnerGetsReferralCodeAndAgent(t *testing.T) {
	uc, m := newAuthUsecase()
	ctx := context.Background()

	m.userRepo.On("GetByEmail", ctx, "partner@example.com").Return(nil, domainerrors.ErrNotFound)
	m.userRepo.On("GetByReferralCode", ctx, mock.AnythingOfType("string")).Return(nil, domainerrors.ErrNotFound)

	var createdUser *entities.User
	m.userRepo.On("Create", ctx, mock.AnythingOfType("*entities.User")).Run(func(args mock.Arguments) {
		createdUser = args.Get(1).(*entities.User)
	}).Return(nil)
	m.agentRepo.On("Create", ctx, mock.AnythingOfType("*entities.Agent")).Return(nil)
	m.sessionRepo.On("Create", ctx, mock.AnythingOfType("*entities.Session")).Return(nil)

	resp, err := uc.Signup(ctx, &entities.SignupInput{
		Email:    "partner@example.com",
		Password: "Str0ngPassw0rd",
		FullName: "Asha Verma",
	}, usecases.ClientMeta{IPAddress: "10.0.0.1", UserAgent: "test"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, entities.UserRoleChannelPartner, resp.User.Role, "role defaults to channel_partner")

	require.NotNil(t, createdUser)
	require.True(t, createdUser.ReferralCode.Valid)
	assert.Regexp(t, regexp.MustCompile(`^[A-Z]{0,3}\d{6}$`), createdUser.ReferralCode.String)

	m.agentRepo.AssertCalled(t, "Create", ctx, mock.AnythingOfType("*entities.Agent"))

	// session stores the hash of the refresh token, never the token
	m.sessionRepo.AssertCalled(t, "Create", ctx, mock.MatchedBy(func(s *entities.Session) bool {
		return s.TokenHash == sha256Hex(resp.RefreshToken)
	}))
}

func TestSignup_CustomerSkipsReferralAndAgent(t *testing.T) {
	uc, m := newAuthUsecase()
	ctx := context.Background()

	m.userRepo.On("GetByEmail", ctx, "buyer@example.com").Return(nil, domainerrors.ErrNotFound)
	m.userRepo.On("Create", ctx, mock.AnythingOfType("*entities.User")).Return(nil)
	m.sessionRepo.On("Create", ctx, mock.AnythingOfType("*entities.Session")).Return(nil)

	resp, err := uc.Signup(ctx, &entities.SignupInput{
		Email:    "buyer@example.com",
		Password: "Str0ngPassw0rd",
		FullName: "Buyer One",
		Role:     "customer",
	}, usecases.ClientMeta{})
	require.NoError(t, err)

	assert.Equal(t, entities.UserRoleCustomer, resp.User.Role)
	assert.False(t, resp.User.ReferralCode.Valid)
	m.agentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	m.userRepo.AssertNotCalled(t, "GetByReferralCode", mock.Anything, mock.Anything)
}

func TestSignup_WeakPassword(t *testing.T) {
	uc, m := newAuthUsecase()

	_, err := uc.Signup(context.Background(), &entities.SignupInput{
		Email:    "weak@example.com",
		Password: "short",
		FullName: "Weak Pass",
	}, usecases.ClientMeta{})
	requireAppErrorCode(t, err, domainerrors.CodeWeakPassword)
	m.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSignup_EmailExists(t *testing.T) {
	uc, m := newAuthUsecase()
	ctx := context.Background()

	existing := &entities.User{ID: uuid.New(), Email: "taken@example.com"}
	m.userRepo.On("GetByEmail", ctx, "taken@example.com").Return(existing, nil)

	_, err := uc.Signup(ctx, &entities.SignupInput{
		Email:    "taken@example.com",
		Password: "Str0ngPassw0rd",
		FullName: "Dup User",
	}, usecases.ClientMeta{})
	requireAppErrorCode(t, err, domainerrors.CodeEmailExists)
	m.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSignup_ReferralCollisionRetries(t *testing.T) {
	uc, m := newAuthUsecase()
	ctx := context.Background()

	m.userRepo.On("GetByEmail", ctx, "retry@example.com").Return(nil, domainerrors.ErrNotFound)
	taken := &entities.User{ID: uuid.New()}
	m.userRepo.On("GetByReferralCode", ctx, mock.AnythingOfType("string")).Return(taken, nil).Once()
	m.userRepo.On("GetByReferralCode", ctx, mock.AnythingOfType("string")).Return(nil, domainerrors.ErrNotFound).Once()
	m.userRepo.On("Create", ctx, mock.AnythingOfType("*entities.User")).Return(nil)
	m.agentRepo.On("Create", ctx, mock.AnythingOfType("*entities.Agent")).Return(nil)
	m.sessionRepo.On("Create", ctx, mock.AnythingOfType("*entities.Session")).Return(nil)

	_, err := uc.Signup(ctx, &entities.SignupInput{
		Email:    "retry@example.com",
		Password: "Str0ngPassw0rd",
		FullName: "Retry User",
	}, usecases.ClientMeta{})
	require.NoError(t, err)
	m.userRepo.AssertNumberOfCalls(t, "GetByReferralCode", 2)
}

func TestSignup_ReferralCollisionExhaustedUsesLastCode(t *testing.T) {
	uc, m := newAuthUsecase()
	ctx := context.Background()

	m.userRepo.On("GetByEmail", ctx, "unlucky@example.com").Return(nil, domainerrors.ErrNotFound)
	taken := &entities.User{ID: uuid.New()}
	m.userRepo.On("GetByReferralCode", ctx, mock.AnythingOfType("string")).Return(taken, nil)
	m.userRepo.On("Create", ctx, mock.AnythingOfType("*entities.User")).Run(func(args mock.Arguments) {
		created := args.Get(1).(*entities.User)
		assert.True(t, created.ReferralCode.Valid)
	}).Return(nil)
	m.agentRepo.On("Create", ctx, mock.AnythingOfType("*entities.Agent")).Return(nil)
	m.sessionRepo.On("Create", ctx, mock.AnythingOfType("*entities.Session")).Return(nil)

	_, err := uc.Signup(ctx, &entities.SignupInput{
		Email:    "unlucky@example.com",
		Password: "Str0ngPassw0rd",
		FullName: "Unlucky User",
	}, usecases.ClientMeta{})
	require.NoError(t, err)
	m.userRepo.AssertNumberOfCalls(t, "GetByReferralCode", 5)
}

func TestSignup_RacingDuplicateEmail(t *testing.T) {
	uc, m := newAuthUsecase()
	ctx := context.Background()

	m.userRepo.On("GetByEmail", ctx, "race@example.com").Return(nil, domainerrors.ErrNotFound).Once()
	m.userRepo.On("GetByReferralCode", ctx, mock.AnythingOfType("string")).Return(nil, domainerrors.ErrNotFound)
	m.userRepo.On("Create", ctx, mock.AnythingOfType("*entities.User")).Return(domainerrors.ErrAlreadyExists)
	winner := &entities.User{ID: uuid.New(), Email: "race@example.com"}
	m.userRepo.On("GetByEmail", ctx, "race@example.com").Return(winner, nil).Once()

	_, err := uc.Signup(ctx, &entities.SignupInput{
		Email:    "race@example.com",
		Password: "Str0ngPassw0rd",
		FullName: "Race User",
	}, usecases.ClientMeta{})
	requireAppErrorCode(t, err, domainerrors.CodeEmailExists)
}

func TestSignup_ReferralInsertCollision(t *testing.T) {
	uc, m := newAuthUsecase()
	ctx := context.Background()

	m.userRepo.On("GetByEmail", ctx, "collide@example.com").Return(nil, domainerrors.ErrNotFound)
	m.userRepo.On("GetByReferralCode", ctx, mock.AnythingOfType("string")).Return(nil, domainerrors.ErrNotFound)
	m.userRepo.On("Create", ctx, mock.AnythingOfType("*entities.User")).Return(domainerrors.ErrAlreadyExists)

	_, err := uc.Signup(ctx, &entities.SignupInput{
		Email:    "collide@example.com",
		Password: "Str0ngPassw0rd",
		FullName: "Collide User",
	}, usecases.ClientMeta{})
	requireAppErrorCode(t, err, domainerrors.CodeSignupError)
}

func newActiveUser(t *testing.T, email, password string) *entities.User {
	t.Helper()
	hash, err := crypto.HashPassword(password)
	require.NoError(t, err)
	return &entities.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		FullName:     "Login User",
		Role:         entities.UserRoleChannelPartner,
		IsActive:     true,
	}
}

func TestLogin_Success(t *testing.T) {
	uc, m := newAuthUsecase()
	ctx := context.Background()

	user := newActiveUser(t, "login@example.com", "Str0ngPassw0rd")
	m.userRepo.On("GetByEmail", ctx, "login@example.com").Return(user, nil)
	m.userRepo.On("UpdateLastLogin", ctx, user.ID, mock.AnythingOfType("time.Time")).Return(nil)
	m.sessionRepo.On("Create", ctx, mock.AnythingOfType("*entities.Session")).Return(nil)

	resp, err := uc.Login(ctx, &entities.LoginInput{
		Email:    "login@example.com",
		Password: "Str0ngPassw0rd",
	}, usecases.ClientMeta{})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.True(t, resp.User.LastLoginAt.Valid)
}

func TestLogin_WrongPassword(t *testing.T) {
	uc, m := newAuthUsecase()
	ctx := context.Background()

	user := newActiveUser(t, "login@example.com", "Str0ngPassw0rd")
	m.userRepo.On("GetByEmail", ctx, "login@example.com").Return(user, nil)

	_, err := uc.Login(ctx, &entities.LoginInput{
		Email:    "login@example.com",
		Password: "WrongPassw0rd",
	}, usecases.ClientMeta{})
	requireAppErrorCode(t, err, domainerrors.CodeInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	uc, m := newAuthUsecase()
	ctx := context.Background()

	m.userRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, domainerrors.ErrNotFound)

	_, err := uc.Login(ctx, &entities.LoginInput{
		Email:    "ghost@example.com",
		Password: "Str0ngPassw0rd",
	}, usecases.ClientMeta{})
	requireAppErrorCode(t, err, domainerrors.CodeInvalidCredentials)
}

func TestLogin_DisabledAccount(t *testing.T) {
	uc, m := newAuthUsecase()
	ctx := context.Background()

	user := newActiveUser(t, "off@example.com", "Str0ngPassw0rd")
	user.IsActive = false
	m.userRepo.On("GetByEmail", ctx, "off@example.com").Return(user, nil)

	_, err := uc.Login(ctx, &entities.LoginInput{
		Email:    "off@example.com",
		Password: "Str0ngPassw0rd",
	}, usecases.ClientMeta{})
	requireAppErrorCode(t, err, domainerrors.CodeAccountDisabled)
	m.sessionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRefresh_IssuesNewAccessToken(t *testing.T) {
	uc, m := newAuthUsecase()
	ctx := context.Background()
	svc := newTestJWTService()

	user := newActiveUser(t, "refresh@example.com", "Str0ngPassw0rd")
	refreshToken, err := svc.GenerateRefreshToken(user.ID, user.Email, string(user.Role))
	require.NoError(t, err)

	session := &entities.Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: sha256Hex(refreshToken),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	m.sessionRepo.On("GetByTokenHash", ctx, sha256Hex(refreshToken)).Return(session, nil)
	m.userRepo.On("GetByID", ctx, user.ID).Return(user, nil)

	accessToken, err := uc.Refresh(ctx, refreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEqual(t, refreshToken, accessToken)
}

func TestRefresh_InvalidToken(t *testing.T) {
	uc, _ := newAuthUsecase()

	_, err := uc.Refresh(context.Background(), "not-a-jwt")
	requireAppErrorCode(t, err, domainerrors.CodeInvalidRefreshToken)
}

func TestRefresh_SessionMissing(t *testing.T) {
	uc, m := newAuthUsecase()
	ctx := context.Background()
	svc := newTestJWTService()

	refreshToken, err := svc.GenerateRefreshToken(uuid.New(), "x@example.com", "customer")
	require.NoError(t, err)

	m.sessionRepo.On("GetByTokenHash", ctx, sha256Hex(refreshToken)).Return(nil, domainerrors.ErrSessionNotFound)

	_, err = uc.Refresh(ctx, refreshToken)
	requireAppErrorCode(t, err, domainerrors.CodeSessionNotFound)
}

func TestRefresh_ExpiredSessionIsDeleted(t *testing.T) {
	uc, m := newAuthUsecase()
	ctx := context.Background()
	svc := newTestJWTService()

	userID := uuid.New()
	refreshToken, err := svc.GenerateRefreshToken(userID, "x@example.com", "customer")
	require.NoError(t, err)

	session := &entities.Session{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: sha256Hex(refreshToken),
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	m.sessionRepo.On("GetByTokenHash", ctx, session.TokenHash).Return(session, nil)
	m.sessionRepo.On("DeleteByTokenHash", ctx, session.TokenHash).Return(nil)

	_, err = uc.Refresh(ctx, refreshToken)
	requireAppErrorCode(t, err, domainerrors.CodeInvalidRefreshToken)
	m.sessionRepo.AssertCalled(t, "DeleteByTokenHash", ctx, session.TokenHash)
}

func TestLogout(t *testing.T) {
	uc, m := newAuthUsecase()
	ctx := context.Background()

	require.NoError(t, uc.Logout(ctx, ""), "missing cookie is not an error")
	m.sessionRepo.AssertNotCalled(t, "DeleteByTokenHash", mock.Anything, mock.Anything)

	m.sessionRepo.On("DeleteByTokenHash", ctx, sha256Hex("some-token")).Return(nil)
	require.NoError(t, uc.Logout(ctx, "some-token"))
	m.sessionRepo.AssertCalled(t, "DeleteByTokenHash", ctx, sha256Hex("some-token"))
}

func TestChangePassword_Success(t *testing.T) {
	uc, m := newAuthUsecase()
	ctx := context.Background()

	user := newActiveUser(t, "pw@example.com", "OldPassw0rd1")
	m.userRepo.On("GetByID", ctx, user.ID).Return(user, nil)
	m.userRepo.On("UpdatePassword", ctx, user.ID, mock.AnythingOfType("string")).Return(nil)
	m.sessionRepo.On("DeleteAllForUserExcept", ctx, user.ID, sha256Hex("caller-refresh")).Return(nil)

	err := uc.ChangePassword(ctx, user.ID, "caller-refresh", &entities.ChangePasswordInput{
		CurrentPassword: "OldPassw0rd1",
		NewPassword:     "NewPassw0rd1",
	})
	require.NoError(t, err)
	m.sessionRepo.AssertCalled(t, "DeleteAllForUserExcept", ctx, user.ID, sha256Hex("caller-refresh"))
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	uc, m := newAuthUsecase()
	ctx := context.Background()

	user := newActiveUser(t, "pw@example.com", "OldPassw0rd1")
	m.userRepo.On("GetByID", ctx, user.ID).Return(user, nil)

	err := uc.ChangePassword(ctx, user.ID, "caller-refresh", &entities.ChangePasswordInput{
		CurrentPassword: "Nope12345",
		NewPassword:     "NewPassw0rd1",
	})
	requireAppErrorCode(t, err, domainerrors.CodeInvalidPassword)
	m.userRepo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}

func TestChangePassword_WeakNew(t *testing.T) {
	uc, m := newAuthUsecase()
	ctx := context.Background()

	user := newActiveUser(t, "pw@example.com", "OldPassw0rd1")
	m.userRepo.On("GetByID", ctx, user.ID).Return(user, nil)

	err := uc.ChangePassword(ctx, user.ID, "caller-refresh", &entities.ChangePasswordInput{
		CurrentPassword: "OldPassw0rd1",
		NewPassword:     "weak",
	})
	requireAppErrorCode(t, err, domainerrors.CodeWeakPassword)
	m.sessionRepo.AssertNotCalled(t, "DeleteAllForUserExcept", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateProfile_EmailConflict(t *testing.T) {
	uc, m := newAuthUsecase()
	ctx := context.Background()

	user := newActiveUser(t, "me@example.com", "Str0ngPassw0rd")
	m.userRepo.On("GetByID", ctx, user.ID).Return(user, nil)
	other := &entities.User{ID: uuid.New(), Email: "taken@example.com"}
	m.userRepo.On("GetByEmail", ctx, "taken@example.com").Return(other, nil)

	newEmail := "taken@example.com"
	_, err := uc.UpdateProfile(ctx, user.ID, &entities.UpdateProfileInput{Email: &newEmail})
	requireAppErrorCode(t, err, domainerrors.CodeEmailExists)
}

func TestUpdateProfile_ChangingEmailResetsVerification(t *testing.T) {
	uc, m := newAuthUsecase()
	ctx := context.Background()

	user := newActiveUser(t, "me@example.com", "Str0ngPassw0rd")
	user.EmailVerified = true
	m.userRepo.On("GetByID", ctx, user.ID).Return(user, nil)
	m.userRepo.On("GetByEmail", ctx, "new@example.com").Return(nil, domainerrors.ErrNotFound)
	m.userRepo.On("Update", ctx, mock.AnythingOfType("*entities.User")).Return(nil)

	newEmail := "new@example.com"
	updated, err := uc.UpdateProfile(ctx, user.ID, &entities.UpdateProfileInput{Email: &newEmail})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)
	assert.False(t, updated.EmailVerified)
}

func TestGetSession_MissingUser(t *testing.T) {
	uc, m := newAuthUsecase()
	ctx := context.Background()

	id := uuid.New()
	m.userRepo.On("GetByID", ctx, id).Return(nil, domainerrors.ErrNotFound)

	_, err := uc.GetSession(ctx, id)
	requireAppErrorCode(t, err, domainerrors.CodeUserNotFound)
}
