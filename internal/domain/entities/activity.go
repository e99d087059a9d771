package entities

import (
	"time"

	"github.com/google/uuid"
)

// Activity is an append-only audit record describing a change to a
// domain entity (follow-up created, status moved, payment recorded).
type Activity struct {
	ID         uuid.UUID     `json:"id"`
	EntityType string        `json:"entityType"`
	EntityID   uuid.UUID     `json:"entityId"`
	Action     string        `json:"action"`
	Detail     string        `json:"detail,omitempty"`
	ActorID    uuid.NullUUID `json:"actorId,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
}

// Entity types recorded in the activity trail
const (
	ActivityEntityLead     = "lead"
	ActivityEntityFollowUp = "follow_up"
	ActivityEntityBooking  = "booking"
)
