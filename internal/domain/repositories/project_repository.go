package repositories

import (
	"context"

	"github.com/google/uuid"
	"realty-crm.backend/internal/domain/entities"
)

// ProjectRepository defines project data operations
type ProjectRepository interface {
	Create(ctx context.Context, project *entities.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Project, error)
	Update(ctx context.Context, project *entities.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*entities.Project, int64, error)
}

// UnitRepository defines unit data operations
type UnitRepository interface {
	Create(ctx context.Context, unit *entities.Unit) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Unit, error)
	Update(ctx context.Context, unit *entities.Unit) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.UnitStatus) error
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*entities.Unit, error)
}
