package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// LeadStatus represents the lifecycle state of a lead
type LeadStatus string

const (
	LeadStatusNew         LeadStatus = "new"
	LeadStatusContacted   LeadStatus = "contacted"
	LeadStatusQualified   LeadStatus = "qualified"
	LeadStatusSiteVisit   LeadStatus = "site_visit"
	LeadStatusNegotiation LeadStatus = "negotiation"
	LeadStatusConverted   LeadStatus = "converted"
	LeadStatusLost        LeadStatus = "lost"
)

// Valid reports whether the status is in the enumerated set. Transitions
// between statuses are deliberately not enforced.
func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified,
		LeadStatusSiteVisit, LeadStatusNegotiation, LeadStatusConverted, LeadStatusLost:
		return true
	}
	return false
}

// LeadSource represents where a lead came from
type LeadSource string

const (
	LeadSourceWebsite  LeadSource = "website"
	LeadSourceReferral LeadSource = "referral"
)

// Lead represents a prospective customer inquiry
type Lead struct {
	ID              uuid.UUID         `json:"id"`
	Name            string            `json:"name"`
	Email           null.String       `json:"email,omitempty"`
	Phone           string            `json:"phone"`
	Status          LeadStatus        `json:"status"`
	Source          LeadSource        `json:"source"`
	AssignedAgentID uuid.NullUUID     `json:"assignedAgentId,omitempty"`
	Budget          null.Float64      `json:"budget,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// PublicLeadInput is the unauthenticated intake payload
type PublicLeadInput struct {
	Name         string   `json:"name" binding:"required,min=2,max=100"`
	Phone        string   `json:"phone" binding:"required,min=7,max=20"`
	Email        string   `json:"email" binding:"omitempty,email"`
	ReferralCode string   `json:"referralCode"`
	Budget       *float64 `json:"budget" binding:"omitempty,gt=0"`
	Notes        string   `json:"notes" binding:"max=2000"`
}

// UpdateLeadInput is a partial lead update by an authenticated user
type UpdateLeadInput struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes" binding:"omitempty,max=2000"`
}

// LeadFilter scopes lead listing
type LeadFilter struct {
	AgentID *uuid.UUID
	Status  *LeadStatus
	Limit   int
	Offset  int
}
