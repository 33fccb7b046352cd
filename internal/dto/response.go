package dto

import (
	"github.com/Harun1302123/impact-flow-optimizer-project/internal/campaign"
	"github.com/Harun1302123/impact-flow-optimizer-project/internal/domain"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error" example:"validation_error"`
	Message string `json:"message,omitempty" example:"user_id is required"`
}

// AssignVariantResponse represents a variant assignment
type AssignVariantResponse struct {
	ExperimentID string `json:"experiment_id" example:"donation-optimization-v1"`
	UserID       string `json:"user_id" example:"user_123"`
	Variant      string `json:"variant" example:"variant_a"`
}

// TrackEventResponse represents a recorded event
type TrackEventResponse struct {
	EventID string `json:"event_id" example:"0b0f6f3e-5a43-4a4c-9a53-2f0c1b9d1e2a"`
	Status  string `json:"status" example:"recorded"`
}

// TrackBulkEventsResponse represents a bulk record result
type TrackBulkEventsResponse struct {
	Accepted int      `json:"accepted" example:"5"`
	Rejected int      `json:"rejected" example:"0"`
	EventIDs []string `json:"event_ids,omitempty"`
	Errors   []string `json:"errors,omitempty" example:"event 3: event_type is required"`
}

// ListEventsResponse represents a filtered view of the event log
type ListEventsResponse struct {
	Count  int            `json:"count" example:"2"`
	Events []domain.Event `json:"events"`
}

// SnapshotResponse represents the aggregate analytics view
type SnapshotResponse struct {
	domain.Snapshot
	// Assignments is -1 when the assignment store could not be counted
	Assignments int `json:"assignments" example:"42"`
}

// CampaignResponse represents a campaign with its progress
type CampaignResponse struct {
	campaign.Campaign
	ProgressPercent float64 `json:"progress_percent" example:"34.5"`
}

// OptimizationResponse represents the progress-dependent campaign content
type OptimizationResponse struct {
	CampaignID string `json:"campaign_id" example:"demo-campaign"`
	campaign.Optimization
}
