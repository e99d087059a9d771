package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"realty-crm.backend/internal/domain/entities"
	domainerrors "realty-crm.backend/internal/domain/errors"
	"realty-crm.backend/internal/domain/repositories"
	"realty-crm.backend/pkg/utils"
)

// ProjectUsecase handles project and unit catalog management
type ProjectUsecase struct {
	projectRepo repositories.ProjectRepository
	unitRepo    repositories.UnitRepository
}

// NewProjectUsecase creates a new project usecase
func NewProjectUsecase(projectRepo repositories.ProjectRepository, unitRepo repositories.UnitRepository) *ProjectUsecase {
	return &ProjectUsecase{
		projectRepo: projectRepo,
		unitRepo:    unitRepo,
	}
}

// Create adds a new project owned by the actor
func (u *ProjectUsecase) Create(ctx context.Context, actorID uuid.UUID, input *entities.CreateProjectInput) (*entities.Project, error) {
	status := entities.ProjectStatusDraft
	if input.Status != "" {
		status = entities.ProjectStatus(input.Status)
	}

	project := &entities.Project{
		ID:          utils.GenerateUUIDv7(),
		Name:        input.Name,
		Location:    input.Location,
		Description: input.Description,
		MinPrice:    null.Float64FromPtr(input.MinPrice),
		MaxPrice:    null.Float64FromPtr(input.MaxPrice),
		Status:      status,
		CreatedBy:   actorID,
	}
	if err := u.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Get returns a project by ID
func (u *ProjectUsecase) Get(ctx context.Context, id uuid.UUID) (*entities.Project, error) {
	project, err := u.projectRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("project not found")
		}
		return nil, err
	}
	return project, nil
}

// List returns projects, newest first
func (u *ProjectUsecase) List(ctx context.Context, limit, offset int) ([]*entities.Project, int64, error) {
	return u.projectRepo.List(ctx, limit, offset)
}

// Update applies a partial project update
func (u *ProjectUsecase) Update(ctx context.Context, id uuid.UUID, input *entities.UpdateProjectInput) (*entities.Project, error) {
	project, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		project.Name = *input.Name
	}
	if input.Location != nil {
		project.Location = *input.Location
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.MinPrice != nil {
		project.MinPrice = null.Float64From(*input.MinPrice)
	}
	if input.MaxPrice != nil {
		project.MaxPrice = null.Float64From(*input.MaxPrice)
	}
	if input.Status != nil {
		project.Status = entities.ProjectStatus(*input.Status)
	}

	if err := u.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Delete removes a project
func (u *ProjectUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	err := u.projectRepo.Delete(ctx, id)
	if errors.Is(err, domainerrors.ErrNotFound) {
		return domainerrors.NotFound("project not found")
	}
	return err
}

// AddUnit adds a unit to an existing project
func (u *ProjectUsecase) AddUnit(ctx context.Context, projectID uuid.UUID, input *entities.CreateUnitInput) (*entities.Unit, error) {
	if _, err := u.Get(ctx, projectID); err != nil {
		return nil, err
	}

	unit := &entities.Unit{
		ID:        utils.GenerateUUIDv7(),
		ProjectID: projectID,
		Number:    input.Number,
		Floor:     input.Floor,
		SizeSqft:  null.Float64FromPtr(input.SizeSqft),
		Price:     input.Price,
		Status:    entities.UnitStatusAvailable,
	}
	if err := u.unitRepo.Create(ctx, unit); err != nil {
		return nil, err
	}
	return unit, nil
}

// ListUnits returns the units of a project
func (u *ProjectUsecase) ListUnits(ctx context.Context, projectID uuid.UUID) ([]*entities.Unit, error) {
	if _, err := u.Get(ctx, projectID); err != nil {
		return nil, err
	}
	return u.unitRepo.ListByProject(ctx, projectID)
}

// UpdateUnit applies a partial unit update
func (u *ProjectUsecase) UpdateUnit(ctx context.Context, id uuid.UUID, input *entities.UpdateUnitInput) (*entities.Unit, error) {
	unit, err := u.unitRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("unit not found")
		}
		return nil, err
	}

	if input.Number != nil {
		unit.Number = *input.Number
	}
	if input.Floor != nil {
		unit.Floor = *input.Floor
	}
	if input.SizeSqft != nil {
		unit.SizeSqft = null.Float64From(*input.SizeSqft)
	}
	if input.Price != nil {
		unit.Price = *input.Price
	}
	if input.Status != nil {
		unit.Status = entities.UnitStatus(*input.Status)
	}

	if err := u.unitRepo.Update(ctx, unit); err != nil {
		return nil, err
	}
	return unit, nil
}
