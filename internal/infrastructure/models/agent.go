package models

import (
	"time"

	"github.com/google/uuid"
)

type Agent struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Status    string    `gorm:"type:varchar(16);not null;default:'active'"`
	Metrics   string    `gorm:"type:text"` // JSON blob
	CreatedAt time.Time
	UpdatedAt time.Time
}
