package repositories

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"realty-crm.backend/internal/domain/entities"
	domainerrors "realty-crm.backend/internal/domain/errors"
	"realty-crm.backend/internal/domain/repositories"
	"realty-crm.backend/internal/infrastructure/models"
)

type agentRepositoryImpl struct {
	db *gorm.DB
}

// NewAgentRepository creates a GORM-backed agent repository.
func NewAgentRepository(db *gorm.DB) repositories.AgentRepository {
	return &agentRepositoryImpl{db: db}
}

func (r *agentRepositoryImpl) Create(ctx context.Context, agent *entities.Agent) error {
	model, err := toAgentModel(agent)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	return nil
}

func (r *agentRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Agent, error) {
	var model models.Agent
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toAgentEntity(&model)
}

func (r *agentRepositoryImpl) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Agent, error) {
	var model models.Agent
	if err := r.db.WithContext(ctx).First(&model, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toAgentEntity(&model)
}

func (r *agentRepositoryImpl) UpdateMetrics(ctx context.Context, id uuid.UUID, metrics entities.AgentMetrics) error {
	raw, err := json.Marshal(metrics)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&models.Agent{}).
		Where("id = ?", id).
		Update("metrics", string(raw))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func toAgentModel(a *entities.Agent) (*models.Agent, error) {
	raw, err := json.Marshal(a.Metrics)
	if err != nil {
		return nil, err
	}
	return &models.Agent{
		ID:        a.ID,
		UserID:    a.UserID,
		Status:    string(a.Status),
		Metrics:   string(raw),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}, nil
}

func toAgentEntity(m *models.Agent) (*entities.Agent, error) {
	var metrics entities.AgentMetrics
	if m.Metrics != "" {
		if err := json.Unmarshal([]byte(m.Metrics), &metrics); err != nil {
			return nil, err
		}
	}
	return &entities.Agent{
		ID:        m.ID,
		UserID:    m.UserID,
		Status:    entities.AgentStatus(m.Status),
		Metrics:   metrics,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}
