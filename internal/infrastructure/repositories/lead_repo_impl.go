package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"realty-crm.backend/internal/domain/entities"
	domainerrors "realty-crm.backend/internal/domain/errors"
	"realty-crm.backend/internal/domain/repositories"
	"realty-crm.backend/internal/infrastructure/models"
)

type leadRepositoryImpl struct {
	db *gorm.DB
}

// NewLeadRepository creates a GORM-backed lead repository.
func NewLeadRepository(db *gorm.DB) repositories.LeadRepository {
	return &leadRepositoryImpl{db: db}
}

func (r *leadRepositoryImpl) Create(ctx context.Context, lead *entities.Lead) error {
	model, err := toLeadModel(lead)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	return nil
}

func (r *leadRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Lead, error) {
	var model models.Lead
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toLeadEntity(&model)
}

func (r *leadRepositoryImpl) Update(ctx context.Context, lead *entities.Lead) error {
	model, err := toLeadModel(lead)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&models.Lead{}).
		Where("id = ?", lead.ID).
		Updates(map[string]interface{}{
			"status":            model.Status,
			"notes":             model.Notes,
			"assigned_agent_id": model.AssignedAgentID,
			"metadata":          model.Metadata,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *leadRepositoryImpl) List(ctx context.Context, filter entities.LeadFilter) ([]*entities.Lead, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Lead{})
	if filter.AgentID != nil {
		query = query.Where("assigned_agent_id = ?", *filter.AgentID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Lead
	if err := query.Order("created_at DESC").Limit(filter.Limit).Offset(filter.Offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	leads := make([]*entities.Lead, 0, len(rows))
	for i := range rows {
		lead, err := toLeadEntity(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		leads = append(leads, lead)
	}
	return leads, total, nil
}

func (r *leadRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Lead{}).Count(&total).Error
	return total, err
}

func toLeadModel(l *entities.Lead) (*models.Lead, error) {
	var metadata string
	if len(l.Metadata) > 0 {
		raw, err := json.Marshal(l.Metadata)
		if err != nil {
			return nil, err
		}
		metadata = string(raw)
	}
	var agentID *uuid.UUID
	if l.AssignedAgentID.Valid {
		id := l.AssignedAgentID.UUID
		agentID = &id
	}
	return &models.Lead{
		ID:              l.ID,
		Name:            l.Name,
		Email:           l.Email.Ptr(),
		Phone:           l.Phone,
		Status:          string(l.Status),
		Source:          string(l.Source),
		AssignedAgentID: agentID,
		Budget:          l.Budget.Ptr(),
		Notes:           l.Notes,
		Metadata:        metadata,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}, nil
}

func toLeadEntity(m *models.Lead) (*entities.Lead, error) {
	var metadata map[string]string
	if m.Metadata != "" {
		if err := json.Unmarshal([]byte(m.Metadata), &metadata); err != nil {
			return nil, err
		}
	}
	var agentID uuid.NullUUID
	if m.AssignedAgentID != nil {
		agentID = uuid.NullUUID{UUID: *m.AssignedAgentID, Valid: true}
	}
	return &entities.Lead{
		ID:              m.ID,
		Name:            m.Name,
		Email:           null.StringFromPtr(m.Email),
		Phone:           m.Phone,
		Status:          entities.LeadStatus(m.Status),
		Source:          entities.LeadSource(m.Source),
		AssignedAgentID: agentID,
		Budget:          null.Float64FromPtr(m.Budget),
		Notes:           m.Notes,
		Metadata:        metadata,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}, nil
}

type followUpRepositoryImpl struct {
	db *gorm.DB
}

// NewFollowUpRepository creates a GORM-backed follow-up repository.
func NewFollowUpRepository(db *gorm.DB) repositories.FollowUpRepository {
	return &followUpRepositoryImpl{db: db}
}

func (r *followUpRepositoryImpl) Create(ctx context.Context, followUp *entities.FollowUp) error {
	return r.db.WithContext(ctx).Create(toFollowUpModel(followUp)).Error
}

func (r *followUpRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.FollowUp, error) {
	var model models.FollowUp
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toFollowUpEntity(&model), nil
}

func (r *followUpRepositoryImpl) Update(ctx context.Context, followUp *entities.FollowUp) error {
	model := toFollowUpModel(followUp)
	result := r.db.WithContext(ctx).Model(&models.FollowUp{}).
		Where("id = ?", followUp.ID).
		Updates(map[string]interface{}{
			"status":       model.Status,
			"note":         model.Note,
			"scheduled_at": model.ScheduledAt,
			"reminder":     model.Reminder,
			"completed_at": model.CompletedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *followUpRepositoryImpl) ListByLead(ctx context.Context, leadID uuid.UUID) ([]*entities.FollowUp, error) {
	var rows []models.FollowUp
	if err := r.db.WithContext(ctx).
		Where("lead_id = ?", leadID).
		Order("scheduled_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	followUps := make([]*entities.FollowUp, 0, len(rows))
	for i := range rows {
		followUps = append(followUps, toFollowUpEntity(&rows[i]))
	}
	return followUps, nil
}

// ListDueReminders returns pending follow-ups whose reminder is due and
// has not fired yet.
func (r *followUpRepositoryImpl) ListDueReminders(ctx context.Context, before time.Time) ([]*entities.FollowUp, error) {
	var rows []models.FollowUp
	if err := r.db.WithContext(ctx).
		Where("reminder = ? AND reminded = ? AND status = ? AND scheduled_at <= ?",
			true, false, string(entities.FollowUpStatusPending), before).
		Order("scheduled_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	followUps := make([]*entities.FollowUp, 0, len(rows))
	for i := range rows {
		followUps = append(followUps, toFollowUpEntity(&rows[i]))
	}
	return followUps, nil
}

func (r *followUpRepositoryImpl) MarkReminded(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&models.FollowUp{}).
		Where("id = ?", id).
		Update("reminded", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func toFollowUpModel(f *entities.FollowUp) *models.FollowUp {
	return &models.FollowUp{
		ID:          f.ID,
		LeadID:      f.LeadID,
		Type:        string(f.Type),
		Note:        f.Note,
		ScheduledAt: f.ScheduledAt,
		Reminder:    f.Reminder,
		Reminded:    f.Reminded,
		Status:      string(f.Status),
		CompletedAt: f.CompletedAt.Ptr(),
		CreatedBy:   f.CreatedBy,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

func toFollowUpEntity(m *models.FollowUp) *entities.FollowUp {
	return &entities.FollowUp{
		ID:          m.ID,
		LeadID:      m.LeadID,
		Type:        entities.FollowUpType(m.Type),
		Note:        m.Note,
		ScheduledAt: m.ScheduledAt,
		Reminder:    m.Reminder,
		Reminded:    m.Reminded,
		Status:      entities.FollowUpStatus(m.Status),
		CompletedAt: null.TimeFromPtr(m.CompletedAt),
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

type activityRepositoryImpl struct {
	db *gorm.DB
}

// NewActivityRepository creates a GORM-backed activity repository.
func NewActivityRepository(db *gorm.DB) repositories.ActivityRepository {
	return &activityRepositoryImpl{db: db}
}

func (r *activityRepositoryImpl) Create(ctx context.Context, activity *entities.Activity) error {
	var actorID *uuid.UUID
	if activity.ActorID.Valid {
		id := activity.ActorID.UUID
		actorID = &id
	}
	model := &models.Activity{
		ID:         activity.ID,
		EntityType: activity.EntityType,
		EntityID:   activity.EntityID,
		Action:     activity.Action,
		Detail:     activity.Detail,
		ActorID:    actorID,
		CreatedAt:  activity.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(model).Error
}

func (r *activityRepositoryImpl) ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]*entities.Activity, error) {
	var rows []models.Activity
	if err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	activities := make([]*entities.Activity, 0, len(rows))
	for i := range rows {
		m := rows[i]
		var actorID uuid.NullUUID
		if m.ActorID != nil {
			actorID = uuid.NullUUID{UUID: *m.ActorID, Valid: true}
		}
		activities = append(activities, &entities.Activity{
			ID:         m.ID,
			EntityType: m.EntityType,
			EntityID:   m.EntityID,
			Action:     m.Action,
			Detail:     m.Detail,
			ActorID:    actorID,
			CreatedAt:  m.CreatedAt,
		})
	}
	return activities, nil
}
