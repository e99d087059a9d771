package models

import (
	"time"

	"github.com/google/uuid"
)

type FollowUp struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	LeadID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Type        string    `gorm:"type:varchar(16);not null"`
	Note        string    `gorm:"type:text"`
	ScheduledAt time.Time `gorm:"not null;index"`
	Reminder    bool      `gorm:"not null;default:false"`
	Reminded    bool      `gorm:"not null;default:false"`
	Status      string    `gorm:"type:varchar(16);not null;default:'pending'"`
	CompletedAt *time.Time
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
