package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"realty-crm.backend/internal/config"
	"realty-crm.backend/internal/domain/entities"
	domainerrors "realty-crm.backend/internal/domain/errors"
	"realty-crm.backend/internal/interfaces/http/middleware"
	"realty-crm.backend/internal/interfaces/http/response"
	"realty-crm.backend/internal/usecases"
	"realty-crm.backend/pkg/jwt"
	"realty-crm.backend/pkg/metrics"
)

type authService interface {
	Signup(ctx context.Context, input *entities.SignupInput, meta usecases.ClientMeta) (*entities.AuthResponse, error)
	Login(ctx context.Context, input *entities.LoginInput, meta usecases.ClientMeta) (*entities.AuthResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	Refresh(ctx context.Context, refreshToken string) (string, error)
	GetSession(ctx context.Context, userID uuid.UUID) (*entities.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, refreshToken string, input *entities.ChangePasswordInput) error
	UpdateProfile(ctx context.Context, userID uuid.UUID, input *entities.UpdateProfileInput) (*entities.User, error)
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	auth         authService
	jwtService   *jwt.JWTService
	jwtConfig    config.JWTConfig
	cookieConfig config.CookieConfig
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth authService, jwtService *jwt.JWTService, jwtConfig config.JWTConfig, cookieConfig config.CookieConfig) *AuthHandler {
	return &AuthHandler{
		auth:         auth,
		jwtService:   jwtService,
		jwtConfig:    jwtConfig,
		cookieConfig: cookieConfig,
	}
}

func (h *AuthHandler) clientMeta(c *gin.Context) usecases.ClientMeta {
	return usecases.ClientMeta{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

// setAuthCookies writes both token cookies. Cross-site frontends need
// SameSite=None, which browsers only accept on secure cookies, so the
// mode follows the secure flag.
func (h *AuthHandler) setAuthCookies(c *gin.Context, accessToken, refreshToken string) {
	if h.cookieConfig.Secure {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(middleware.AccessTokenCookie, accessToken, int(h.jwtConfig.AccessExpiry.Seconds()), "/", h.cookieConfig.Domain, h.cookieConfig.Secure, true)
	c.SetCookie(middleware.RefreshTokenCookie, refreshToken, int(h.jwtConfig.RefreshExpiry.Seconds()), "/", h.cookieConfig.Domain, h.cookieConfig.Secure, true)
}

func (h *AuthHandler) setAccessCookie(c *gin.Context, accessToken string) {
	if h.cookieConfig.Secure {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(middleware.AccessTokenCookie, accessToken, int(h.jwtConfig.AccessExpiry.Seconds()), "/", h.cookieConfig.Domain, h.cookieConfig.Secure, true)
}

// clearAuthCookies expires both token cookies with the same attributes
// they were set with, otherwise browsers keep the originals.
func (h *AuthHandler) clearAuthCookies(c *gin.Context) {
	if h.cookieConfig.Secure {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", h.cookieConfig.Domain, h.cookieConfig.Secure, true)
	c.SetCookie(middleware.RefreshTokenCookie, "", -1, "/", h.cookieConfig.Domain, h.cookieConfig.Secure, true)
}

// Signup handles account creation
// POST /api/v1/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var input entities.SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	authResponse, err := h.auth.Signup(c.Request.Context(), &input, h.clientMeta(c))
	if err != nil {
		metrics.SignupsTotal.WithLabelValues("error").Inc()
		response.Error(c, err)
		return
	}
	metrics.SignupsTotal.WithLabelValues("success").Inc()

	h.setAuthCookies(c, authResponse.AccessToken, authResponse.RefreshToken)
	response.Success(c, http.StatusCreated, gin.H{
		"accessToken": authResponse.AccessToken,
		"user":        authResponse.User.Profile(),
	})
}

// Login handles user login
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	authResponse, err := h.auth.Login(c.Request.Context(), &input, h.clientMeta(c))
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		response.Error(c, err)
		return
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	h.setAuthCookies(c, authResponse.AccessToken, authResponse.RefreshToken)
	response.Success(c, http.StatusOK, gin.H{
		"accessToken": authResponse.AccessToken,
		"user":        authResponse.User.Profile(),
	})
}

// Logout revokes the current session
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	refreshToken, _ := c.Cookie(middleware.RefreshTokenCookie)

	if err := h.auth.Logout(c.Request.Context(), refreshToken); err != nil {
		response.Error(c, err)
		return
	}

	h.clearAuthCookies(c)
	response.Success(c, http.StatusOK, gin.H{"message": "logged out"})
}

// Refresh issues a new access token from the refresh cookie
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(middleware.RefreshTokenCookie)
	if err != nil || refreshToken == "" {
		response.Error(c, domainerrors.Unauthorized(domainerrors.CodeNoRefreshToken, "refresh token is required"))
		return
	}

	accessToken, err := h.auth.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setAccessCookie(c, accessToken)
	response.Success(c, http.StatusOK, gin.H{"accessToken": accessToken})
}

// Session returns the current authenticated user. The route skips the
// auth middleware so a valid token whose user row has vanished reports
// not-found instead of the middleware's blanket unauthorized.
// GET /api/v1/auth/session
func (h *AuthHandler) Session(c *gin.Context) {
	token := middleware.ExtractToken(c)
	if token == "" {
		response.Error(c, domainerrors.Unauthorized(domainerrors.CodeUnauthorized, "authentication required"))
		return
	}

	claims, err := h.jwtService.ValidateToken(token)
	if err != nil {
		response.Error(c, domainerrors.Unauthorized(domainerrors.CodeInvalidToken, "invalid or expired token"))
		return
	}

	user, err := h.auth.GetSession(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user.Profile()})
}

// ChangePassword changes the caller's password and revokes other sessions
// PUT /api/v1/auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized(domainerrors.CodeUnauthorized, "authentication required"))
		return
	}

	var input entities.ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	refreshToken, _ := c.Cookie(middleware.RefreshTokenCookie)

	if err := h.auth.ChangePassword(c.Request.Context(), userID, refreshToken, &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "password changed"})
}

// UpdateProfile updates the caller's profile fields
// PUT /api/v1/auth/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized(domainerrors.CodeUnauthorized, "authentication required"))
		return
	}

	var input entities.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	user, err := h.auth.UpdateProfile(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user.Profile()})
}
