package entities

import (
	"time"

	"github.com/google/uuid"
)

// AgentStatus represents the working state of an agent record
type AgentStatus string

const (
	AgentStatusActive   AgentStatus = "active"
	AgentStatusInactive AgentStatus = "inactive"
)

// Agent pairs a channel-partner user with lead assignment and
// performance tracking. Created automatically at signup for
// channel-partner accounts.
type Agent struct {
	ID        uuid.UUID    `json:"id"`
	UserID    uuid.UUID    `json:"userId"`
	Status    AgentStatus  `json:"status"`
	Metrics   AgentMetrics `json:"metrics"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// AgentMetrics is an opaque performance blob kept alongside the agent
type AgentMetrics struct {
	TotalLeads     int `json:"totalLeads"`
	ConvertedLeads int `json:"convertedLeads"`
	SiteVisits     int `json:"siteVisits"`
}
