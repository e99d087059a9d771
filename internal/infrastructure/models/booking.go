package models

import (
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	LeadID    uuid.UUID `gorm:"type:uuid;index;not null"`
	UnitID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Amount    float64   `gorm:"not null"`
	Status    string    `gorm:"type:varchar(16);not null;default:'pending'"`
	BookedBy  uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Payment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	BookingID uuid.UUID `gorm:"type:uuid;index;not null"`
	Amount    float64   `gorm:"not null"`
	Mode      string    `gorm:"type:varchar(20);not null"`
	Reference *string   `gorm:"type:varchar(100)"`
	PaidAt    time.Time `gorm:"not null"`
	CreatedAt time.Time
}
