package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// ProjectStatus represents the sales state of a project
type ProjectStatus string

const (
	ProjectStatusDraft     ProjectStatus = "draft"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusCompleted ProjectStatus = "completed"
)

// Project is a real-estate development with sellable units
type Project struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Location    string        `json:"location"`
	Description string        `json:"description,omitempty"`
	MinPrice    null.Float64  `json:"minPrice,omitempty"`
	MaxPrice    null.Float64  `json:"maxPrice,omitempty"`
	Status      ProjectStatus `json:"status"`
	CreatedBy   uuid.UUID     `json:"createdBy"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// CreateProjectInput creates a project
type CreateProjectInput struct {
	Name        string   `json:"name" binding:"required,min=2,max=150"`
	Location    string   `json:"location" binding:"required,max=200"`
	Description string   `json:"description" binding:"max=5000"`
	MinPrice    *float64 `json:"minPrice" binding:"omitempty,gt=0"`
	MaxPrice    *float64 `json:"maxPrice" binding:"omitempty,gt=0"`
	Status      string   `json:"status" binding:"omitempty,oneof=draft active completed"`
}

// UpdateProjectInput is a partial project update
type UpdateProjectInput struct {
	Name        *string  `json:"name" binding:"omitempty,min=2,max=150"`
	Location    *string  `json:"location" binding:"omitempty,max=200"`
	Description *string  `json:"description" binding:"omitempty,max=5000"`
	MinPrice    *float64 `json:"minPrice" binding:"omitempty,gt=0"`
	MaxPrice    *float64 `json:"maxPrice" binding:"omitempty,gt=0"`
	Status      *string  `json:"status" binding:"omitempty,oneof=draft active completed"`
}

// UnitStatus represents the availability of a unit
type UnitStatus string

const (
	UnitStatusAvailable UnitStatus = "available"
	UnitStatusReserved  UnitStatus = "reserved"
	UnitStatusBooked    UnitStatus = "booked"
	UnitStatusSold      UnitStatus = "sold"
)

// Unit is a sellable unit inside a project
type Unit struct {
	ID        uuid.UUID    `json:"id"`
	ProjectID uuid.UUID    `json:"projectId"`
	Number    string       `json:"number"`
	Floor     int          `json:"floor"`
	SizeSqft  null.Float64 `json:"sizeSqft,omitempty"`
	Price     float64      `json:"price"`
	Status    UnitStatus   `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// CreateUnitInput adds a unit to a project
type CreateUnitInput struct {
	Number   string   `json:"number" binding:"required,max=20"`
	Floor    int      `json:"floor"`
	SizeSqft *float64 `json:"sizeSqft" binding:"omitempty,gt=0"`
	Price    float64  `json:"price" binding:"required,gt=0"`
}

// UpdateUnitInput is a partial unit update
type UpdateUnitInput struct {
	Number   *string  `json:"number" binding:"omitempty,max=20"`
	Floor    *int     `json:"floor"`
	SizeSqft *float64 `json:"sizeSqft" binding:"omitempty,gt=0"`
	Price    *float64 `json:"price" binding:"omitempty,gt=0"`
	Status   *string  `json:"status" binding:"omitempty,oneof=available reserved booked sold"`
}
