package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"realty-crm.backend/internal/domain/entities"
)

// LeadRepository defines lead data operations
type LeadRepository interface {
	Create(ctx context.Context, lead *entities.Lead) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Lead, error)
	Update(ctx context.Context, lead *entities.Lead) error
	List(ctx context.Context, filter entities.LeadFilter) ([]*entities.Lead, int64, error)
	Count(ctx context.Context) (int64, error)
}

// FollowUpRepository defines follow-up scheduling operations
type FollowUpRepository interface {
	Create(ctx context.Context, followUp *entities.FollowUp) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.FollowUp, error)
	Update(ctx context.Context, followUp *entities.FollowUp) error
	ListByLead(ctx context.Context, leadID uuid.UUID) ([]*entities.FollowUp, error)
	// ListDueReminders returns pending follow-ups with the reminder flag
	// scheduled at or before the given time which have not been reminded yet.
	ListDueReminders(ctx context.Context, before time.Time) ([]*entities.FollowUp, error)
	MarkReminded(ctx context.Context, id uuid.UUID) error
}

// ActivityRepository defines audit-trail operations
type ActivityRepository interface {
	Create(ctx context.Context, activity *entities.Activity) error
	ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]*entities.Activity, error)
}
