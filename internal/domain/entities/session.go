package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Session is a server-side record of an issued refresh token. Only the
// SHA-256 hash of the token is persisted; the signed token lives in the
// client's cookie.
type Session struct {
	ID        uuid.UUID   `json:"id"`
	UserID    uuid.UUID   `json:"userId"`
	TokenHash string      `json:"-"`
	ExpiresAt time.Time   `json:"expiresAt"`
	IPAddress null.String `json:"ipAddress,omitempty"`
	UserAgent null.String `json:"userAgent,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// Expired reports whether the session is past its expiry at the given time.
// The store itself never filters on expiry; callers treat expired as absent.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
