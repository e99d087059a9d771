package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// FollowUpType represents the contact channel of a follow-up
type FollowUpType string

const (
	FollowUpTypeCall     FollowUpType = "call"
	FollowUpTypeMeeting  FollowUpType = "meeting"
	FollowUpTypeEmail    FollowUpType = "email"
	FollowUpTypeWhatsapp FollowUpType = "whatsapp"
)

// FollowUpStatus represents completion state
type FollowUpStatus string

const (
	FollowUpStatusPending   FollowUpStatus = "pending"
	FollowUpStatusCompleted FollowUpStatus = "completed"
)

// FollowUp is a scheduled touchpoint on a lead
type FollowUp struct {
	ID          uuid.UUID      `json:"id"`
	LeadID      uuid.UUID      `json:"leadId"`
	Type        FollowUpType   `json:"type"`
	Note        string         `json:"note,omitempty"`
	ScheduledAt time.Time      `json:"scheduledAt"`
	Reminder    bool           `json:"reminder"`
	Reminded    bool           `json:"reminded"`
	Status      FollowUpStatus `json:"status"`
	CompletedAt null.Time      `json:"completedAt,omitempty"`
	CreatedBy   uuid.UUID      `json:"createdBy"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// CreateFollowUpInput schedules a follow-up on a lead
type CreateFollowUpInput struct {
	Type        string    `json:"type" binding:"required,oneof=call meeting email whatsapp"`
	Note        string    `json:"note" binding:"max=2000"`
	ScheduledAt time.Time `json:"scheduledAt" binding:"required"`
	Reminder    bool      `json:"reminder"`
}

// UpdateFollowUpInput is a partial follow-up update
type UpdateFollowUpInput struct {
	Status      *string    `json:"status" binding:"omitempty,oneof=pending completed"`
	Note        *string    `json:"note" binding:"omitempty,max=2000"`
	ScheduledAt *time.Time `json:"scheduledAt"`
	Reminder    *bool      `json:"reminder"`
}
