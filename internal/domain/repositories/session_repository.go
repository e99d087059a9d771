package repositories

import (
	"context"

	"github.com/google/uuid"
	"realty-crm.backend/internal/domain/entities"
)

// SessionRepository defines refresh-session persistence. Sessions are
// looked up by the SHA-256 hash of the refresh token; expiry is checked
// by callers, not the store.
type SessionRepository interface {
	Create(ctx context.Context, session *entities.Session) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*entities.Session, error)
	// DeleteByTokenHash is idempotent; deleting an absent hash is not an error.
	DeleteByTokenHash(ctx context.Context, tokenHash string) error
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) error
	// DeleteAllForUserExcept drops every session of the user but the one
	// identified by keepTokenHash (password change keeps the caller online).
	DeleteAllForUserExcept(ctx context.Context, userID uuid.UUID, keepTokenHash string) error
	DeleteExpired(ctx context.Context) (int64, error)
}
