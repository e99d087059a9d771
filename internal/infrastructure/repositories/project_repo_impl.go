package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"realty-crm.backend/internal/domain/entities"
	domainerrors "realty-crm.backend/internal/domain/errors"
	"realty-crm.backend/internal/domain/repositories"
	"realty-crm.backend/internal/infrastructure/models"
)

type projectRepositoryImpl struct {
	db *gorm.DB
}

// NewProjectRepository creates a GORM-backed project repository.
func NewProjectRepository(db *gorm.DB) repositories.ProjectRepository {
	return &projectRepositoryImpl{db: db}
}

func (r *projectRepositoryImpl) Create(ctx context.Context, project *entities.Project) error {
	return r.db.WithContext(ctx).Create(toProjectModel(project)).Error
}

func (r *projectRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Project, error) {
	var model models.Project
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toProjectEntity(&model), nil
}

func (r *projectRepositoryImpl) Update(ctx context.Context, project *entities.Project) error {
	model := toProjectModel(project)
	result := r.db.WithContext(ctx).Model(&models.Project{}).
		Where("id = ?", project.ID).
		Updates(map[string]interface{}{
			"name":        model.Name,
			"location":    model.Location,
			"description": model.Description,
			"min_price":   model.MinPrice,
			"max_price":   model.MaxPrice,
			"status":      model.Status,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *projectRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Project{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *projectRepositoryImpl) List(ctx context.Context, limit, offset int) ([]*entities.Project, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Project{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Project
	if err := r.db.WithContext(ctx).Model(&models.Project{}).
		Order("created_at DESC").Limit(limit).Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	projects := make([]*entities.Project, 0, len(rows))
	for i := range rows {
		projects = append(projects, toProjectEntity(&rows[i]))
	}
	return projects, total, nil
}

func toProjectModel(p *entities.Project) *models.Project {
	return &models.Project{
		ID:          p.ID,
		Name:        p.Name,
		Location:    p.Location,
		Description: p.Description,
		MinPrice:    p.MinPrice.Ptr(),
		MaxPrice:    p.MaxPrice.Ptr(),
		Status:      string(p.Status),
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProjectEntity(m *models.Project) *entities.Project {
	return &entities.Project{
		ID:          m.ID,
		Name:        m.Name,
		Location:    m.Location,
		Description: m.Description,
		MinPrice:    null.Float64FromPtr(m.MinPrice),
		MaxPrice:    null.Float64FromPtr(m.MaxPrice),
		Status:      entities.ProjectStatus(m.Status),
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

type unitRepositoryImpl struct {
	db *gorm.DB
}

// NewUnitRepository creates a GORM-backed unit repository.
func NewUnitRepository(db *gorm.DB) repositories.UnitRepository {
	return &unitRepositoryImpl{db: db}
}

func (r *unitRepositoryImpl) Create(ctx context.Context, unit *entities.Unit) error {
	return r.db.WithContext(ctx).Create(toUnitModel(unit)).Error
}

func (r *unitRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Unit, error) {
	var model models.Unit
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toUnitEntity(&model), nil
}

func (r *unitRepositoryImpl) Update(ctx context.Context, unit *entities.Unit) error {
	model := toUnitModel(unit)
	result := r.db.WithContext(ctx).Model(&models.Unit{}).
		Where("id = ?", unit.ID).
		Updates(map[string]interface{}{
			"number":    model.Number,
			"floor":     model.Floor,
			"size_sqft": model.SizeSqft,
			"price":     model.Price,
			"status":    model.Status,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *unitRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.UnitStatus) error {
	result := r.db.WithContext(ctx).Model(&models.Unit{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *unitRepositoryImpl) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*entities.Unit, error) {
	var rows []models.Unit
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("number ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	units := make([]*entities.Unit, 0, len(rows))
	for i := range rows {
		units = append(units, toUnitEntity(&rows[i]))
	}
	return units, nil
}

func toUnitModel(u *entities.Unit) *models.Unit {
	return &models.Unit{
		ID:        u.ID,
		ProjectID: u.ProjectID,
		Number:    u.Number,
		Floor:     u.Floor,
		SizeSqft:  u.SizeSqft.Ptr(),
		Price:     u.Price,
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUnitEntity(m *models.Unit) *entities.Unit {
	return &entities.Unit{
		ID:        m.ID,
		ProjectID: m.ProjectID,
		Number:    m.Number,
		Floor:     m.Floor,
		SizeSqft:  null.Float64FromPtr(m.SizeSqft),
		Price:     m.Price,
		Status:    entities.UnitStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
