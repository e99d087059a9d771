package models

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(150);not null"`
	Location    string    `gorm:"type:varchar(200);not null"`
	Description string    `gorm:"type:text"`
	MinPrice    *float64
	MaxPrice    *float64
	Status      string    `gorm:"type:varchar(16);not null;default:'draft'"`
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Unit struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProjectID uuid.UUID `gorm:"type:uuid;index;not null"`
	Number    string    `gorm:"type:varchar(20);not null"`
	Floor     int       `gorm:"not null;default:0"`
	SizeSqft  *float64
	Price     float64 `gorm:"not null"`
	Status    string  `gorm:"type:varchar(16);not null;default:'available'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
