package models

import (
	"time"

	"github.com/google/uuid"
)

type Activity struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EntityType string     `gorm:"type:varchar(32);not null;index:idx_activities_entity"`
	EntityID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_activities_entity"`
	Action     string     `gorm:"type:varchar(64);not null"`
	Detail     string     `gorm:"type:text"`
	ActorID    *uuid.UUID `gorm:"type:uuid"`
	CreatedAt  time.Time
}
