package usecases

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"realty-crm.backend/internal/domain/entities"
	domainerrors "realty-crm.backend/internal/domain/errors"
	"realty-crm.backend/internal/domain/repositories"
	"realty-crm.backend/pkg/crypto"
	"realty-crm.backend/pkg/jwt"
	"realty-crm.backend/pkg/referral"
	"realty-crm.backend/pkg/utils"
)

// referralCodeAttempts bounds retries when a generated code collides
// with an existing one.
const referralCodeAttempts = 5

// ClientMeta carries request metadata recorded on the session row.
type ClientMeta struct {
	IPAddress string
	UserAgent string
}

// AuthUsecase handles authentication business logic
type AuthUsecase struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	agentRepo   repositories.AgentRepository
	jwtService  *jwt.JWTService
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	sessionRepo repositories.SessionRepository,
	agentRepo repositories.AgentRepository,
	jwtService *jwt.JWTService,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		agentRepo:   agentRepo,
		jwtService:  jwtService,
	}
}

// hashToken returns the hex SHA-256 of a signed token. Sessions store
// this hash, never the token itself.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Signup registers a new account. Channel partners additionally get a
// unique referral code and an agent record so leads can be routed to
// them.
func (u *AuthUsecase) Signup(ctx context.Context, input *entities.SignupInput, meta ClientMeta) (*entities.AuthResponse, error) {
	if err := crypto.ValidatePasswordStrength(input.Password); err != nil {
		return nil, domainerrors.BadRequestCode(domainerrors.CodeWeakPassword, err.Error())
	}

	role := entities.UserRole(input.Role)
	if input.Role == "" {
		role = entities.UserRoleChannelPartner
	}
	if !role.Valid() {
		return nil, domainerrors.BadRequest("invalid role")
	}

	_, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		return nil, domainerrors.BadRequestCode(domainerrors.CodeEmailExists, "email already registered")
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		ID:           utils.GenerateUUIDv7(),
		Email:        input.Email,
		PasswordHash: passwordHash,
		FullName:     input.FullName,
		Role:         role,
		IsActive:     true,
	}
	if input.Phone != "" {
		user.Phone = null.StringFrom(input.Phone)
	}

	if role == entities.UserRoleChannelPartner {
		code, err := u.uniqueReferralCode(ctx, input.FullName)
		if err != nil {
			return nil, err
		}
		user.ReferralCode = null.StringFrom(code)
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			// The unique violation is either a racing signup on the same
			// email or a referral code collision that survived the retries.
			if _, emailErr := u.userRepo.GetByEmail(ctx, input.Email); emailErr == nil {
				return nil, domainerrors.BadRequestCode(domainerrors.CodeEmailExists, "email already registered")
			}
			return nil, domainerrors.NewAppError(500, domainerrors.CodeSignupError, "could not allocate referral code", err)
		}
		return nil, err
	}

	if role == entities.UserRoleChannelPartner {
		agent := &entities.Agent{
			ID:     utils.GenerateUUIDv7(),
			UserID: user.ID,
			Status: entities.AgentStatusActive,
		}
		if err := u.agentRepo.Create(ctx, agent); err != nil {
			return nil, domainerrors.NewAppError(500, domainerrors.CodeSignupError, "account created but agent setup failed", err)
		}
	}

	return u.issueSession(ctx, user, meta)
}

// uniqueReferralCode generates a code and retries on collision. If every
// attempt collides the last code is used anyway; the unique constraint
// at insert time catches the losing side of that long-odds race.
func (u *AuthUsecase) uniqueReferralCode(ctx context.Context, fullName string) (string, error) {
	var code string
	for i := 0; i < referralCodeAttempts; i++ {
		var err error
		code, err = referral.Generate(fullName)
		if err != nil {
			return "", err
		}
		_, err = u.userRepo.GetByReferralCode(ctx, code)
		if errors.Is(err, domainerrors.ErrNotFound) {
			return code, nil
		}
		if err != nil {
			return "", err
		}
	}
	return code, nil
}

// Login authenticates a user and opens a new session
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput, meta ClientMeta) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Unauthorized(domainerrors.CodeInvalidCredentials, "invalid email or password")
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.Unauthorized(domainerrors.CodeInvalidCredentials, "invalid email or password")
	}

	if !user.IsActive {
		return nil, domainerrors.NewAppError(403, domainerrors.CodeAccountDisabled, "account is disabled", domainerrors.ErrAccountDisabled)
	}

	now := time.Now().UTC()
	if err := u.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLoginAt = null.TimeFrom(now)

	return u.issueSession(ctx, user, meta)
}

// issueSession generates a token pair and persists a session keyed by
// the refresh token hash.
func (u *AuthUsecase) issueSession(ctx context.Context, user *entities.User, meta ClientMeta) (*entities.AuthResponse, error) {
	tokenPair, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	session := &entities.Session{
		ID:        utils.GenerateUUIDv7(),
		UserID:    user.ID,
		TokenHash: hashToken(tokenPair.RefreshToken),
		ExpiresAt: time.Now().UTC().Add(u.jwtService.RefreshExpiry()),
	}
	if meta.IPAddress != "" {
		session.IPAddress = null.StringFrom(meta.IPAddress)
	}
	if meta.UserAgent != "" {
		session.UserAgent = null.StringFrom(meta.UserAgent)
	}

	if err := u.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User:         user,
	}, nil
}

// Logout removes the session matching the presented refresh token.
// Unknown tokens are ignored so logout never fails on a stale cookie.
func (u *AuthUsecase) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return u.sessionRepo.DeleteByTokenHash(ctx, hashToken(refreshToken))
}

// Refresh validates a refresh token against its stored session and
// issues a new access token. The refresh token itself is not rotated.
func (u *AuthUsecase) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := u.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return "", domainerrors.Unauthorized(domainerrors.CodeInvalidRefreshToken, "invalid refresh token")
	}

	session, err := u.sessionRepo.GetByTokenHash(ctx, hashToken(refreshToken))
	if err != nil {
		if errors.Is(err, domainerrors.ErrSessionNotFound) {
			return "", domainerrors.Unauthorized(domainerrors.CodeSessionNotFound, "session not found")
		}
		return "", err
	}
	if session.Expired(time.Now().UTC()) {
		_ = u.sessionRepo.DeleteByTokenHash(ctx, session.TokenHash)
		return "", domainerrors.Unauthorized(domainerrors.CodeInvalidRefreshToken, "session expired")
	}

	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return "", domainerrors.Unauthorized(domainerrors.CodeUserNotFound, "user no longer exists")
		}
		return "", err
	}
	if !user.IsActive {
		return "", domainerrors.NewAppError(403, domainerrors.CodeAccountDisabled, "account is disabled", domainerrors.ErrAccountDisabled)
	}

	return u.jwtService.GenerateAccessToken(user.ID, user.Email, string(user.Role))
}

// GetSession returns the current user, freshly loaded.
func (u *AuthUsecase) GetSession(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NewAppError(404, domainerrors.CodeUserNotFound, "user not found", domainerrors.ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password, applies the new one and
// revokes every other session of the user. The caller's own session,
// identified by its refresh token, stays alive.
func (u *AuthUsecase) ChangePassword(ctx context.Context, userID uuid.UUID, refreshToken string, input *entities.ChangePasswordInput) error {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !crypto.CheckPassword(input.CurrentPassword, user.PasswordHash) {
		return domainerrors.BadRequestCode(domainerrors.CodeInvalidPassword, "current password is incorrect")
	}

	if err := crypto.ValidatePasswordStrength(input.NewPassword); err != nil {
		return domainerrors.BadRequestCode(domainerrors.CodeWeakPassword, err.Error())
	}

	newHash, err := crypto.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	if err := u.userRepo.UpdatePassword(ctx, userID, newHash); err != nil {
		return err
	}

	return u.sessionRepo.DeleteAllForUserExcept(ctx, userID, hashToken(refreshToken))
}

// UpdateProfile applies a partial update to the caller's profile.
func (u *AuthUsecase) UpdateProfile(ctx context.Context, userID uuid.UUID, input *entities.UpdateProfileInput) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Email != nil && *input.Email != user.Email {
		_, err := u.userRepo.GetByEmail(ctx, *input.Email)
		if err == nil {
			return nil, domainerrors.BadRequestCode(domainerrors.CodeEmailExists, "email already registered")
		}
		if !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
		user.Email = *input.Email
		user.EmailVerified = false
	}
	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Phone != nil {
		if *input.Phone == "" {
			user.Phone = null.String{}
		} else {
			user.Phone = null.StringFrom(*input.Phone)
		}
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.BadRequestCode(domainerrors.CodeEmailExists, "email already registered")
		}
		return nil, err
	}
	return user, nil
}
