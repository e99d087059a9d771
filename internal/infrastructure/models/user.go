package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Email         string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash  string     `gorm:"type:varchar(255);not null"`
	FullName      string     `gorm:"type:varchar(100);not null"`
	Phone         *string    `gorm:"type:varchar(20)"`
	Role          string     `gorm:"type:varchar(32);not null;default:'channel_partner'"`
	ReferralCode  *string    `gorm:"type:varchar(9);uniqueIndex"`
	IsActive      bool       `gorm:"not null;default:true"`
	EmailVerified bool       `gorm:"not null;default:false"`
	LastLoginAt   *time.Time `gorm:"type:timestamp"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
