package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"realty-crm.backend/internal/domain/entities"
	domainerrors "realty-crm.backend/internal/domain/errors"
	"realty-crm.backend/internal/domain/repositories"
	"realty-crm.backend/internal/interfaces/http/response"
	"realty-crm.backend/pkg/jwt"
)

const (
	// AccessTokenCookie is the cookie carrying the access token
	AccessTokenCookie = "accessToken"
	// RefreshTokenCookie is the cookie carrying the refresh token
	RefreshTokenCookie = "refreshToken"
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// UserIDKey is the context key for user ID
	UserIDKey = "userId"
	// CurrentUserKey is the context key for the loaded user
	CurrentUserKey = "currentUser"
)

// ExtractToken reads the access token from the cookie, falling back to
// the Authorization header for non-browser clients.
func ExtractToken(c *gin.Context) string {
	if token, err := c.Cookie(AccessTokenCookie); err == nil && token != "" {
		return token
	}
	authHeader := c.GetHeader(AuthorizationHeader)
	if strings.HasPrefix(authHeader, BearerPrefix) {
		return strings.TrimPrefix(authHeader, BearerPrefix)
	}
	return ""
}

// AuthMiddleware authenticates the request and loads the current user.
// The user is re-fetched on every request so deactivation and deletion
// take effect immediately, not at token expiry.
func AuthMiddleware(jwtService *jwt.JWTService, userRepo repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractToken(c)
		if token == "" {
			response.AbortUnauthorized(c, domainerrors.CodeUnauthorized, "authentication required")
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			response.AbortUnauthorized(c, domainerrors.CodeInvalidToken, "invalid or expired token")
			return
		}

		user, err := userRepo.GetByID(c.Request.Context(), claims.UserID)
		if err != nil || !user.IsActive {
			response.AbortUnauthorized(c, domainerrors.CodeUnauthorized, "account is not available")
			return
		}

		c.Set(UserIDKey, user.ID)
		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// OptionalAuth attaches the identity when a valid token is present but
// never rejects the request. Anonymous and broken-token callers pass
// through with no identity attached.
func OptionalAuth(jwtService *jwt.JWTService, userRepo repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			c.Next()
			return
		}

		user, err := userRepo.GetByID(c.Request.Context(), claims.UserID)
		if err != nil || !user.IsActive {
			c.Next()
			return
		}

		c.Set(UserIDKey, user.ID)
		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// GetUserID gets the authenticated user ID from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	return userID.(uuid.UUID), true
}

// GetCurrentUser gets the authenticated user from context
func GetCurrentUser(c *gin.Context) (*entities.User, bool) {
	user, exists := c.Get(CurrentUserKey)
	if !exists {
		return nil, false
	}
	return user.(*entities.User), true
}

// RequireRole allows only the given roles past this point
func RequireRole(roles ...entities.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := GetCurrentUser(c)
		if !exists {
			response.AbortUnauthorized(c, domainerrors.CodeUnauthorized, "authentication required")
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		response.AbortForbidden(c, "insufficient permissions")
	}
}

// RequireAdmin allows only admins
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(entities.UserRoleAdmin)
}

// RequireStaff allows admins and builders
func RequireStaff() gin.HandlerFunc {
	return RequireRole(entities.UserRoleAdmin, entities.UserRoleBuilder)
}
