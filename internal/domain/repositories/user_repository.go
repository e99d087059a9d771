package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"realty-crm.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	GetByReferralCode(ctx context.Context, code string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	List(ctx context.Context, search string, limit, offset int) ([]*entities.User, int64, error)
}

// AgentRepository defines agent/channel-partner record operations
type AgentRepository interface {
	Create(ctx context.Context, agent *entities.Agent) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Agent, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Agent, error)
	UpdateMetrics(ctx context.Context, id uuid.UUID, metrics entities.AgentMetrics) error
}
