package models

import (
	"time"

	"github.com/google/uuid"
)

type Lead struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name            string     `gorm:"type:varchar(100);not null"`
	Email           *string    `gorm:"type:varchar(255)"`
	Phone           string     `gorm:"type:varchar(20);not null"`
	Status          string     `gorm:"type:varchar(20);not null;default:'new';index"`
	Source          string     `gorm:"type:varchar(20);not null"`
	AssignedAgentID *uuid.UUID `gorm:"type:uuid;index"`
	Budget          *float64
	Notes           string `gorm:"type:text"`
	Metadata        string `gorm:"type:text"` // JSON blob
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
