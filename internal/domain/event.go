package domain

import "time"

// Well-known event types feeding the per-variant funnel
const (
	EventTypePageView           = "page_view"
	EventTypeCTAClick           = "cta_click"
	EventTypeDonationSuccessful = "donation_successful"
	EventTypeExperimentExposure = "experiment_exposure"
)

// Event is an immutable analytics record. VariantID and CampaignID are lifted
// out of Payload when present; an empty string means the tag was absent.
type Event struct {
	ID         string         `json:"id"`
	EventType  string         `json:"event_type"`
	Payload    map[string]any `json:"payload"`
	Timestamp  time.Time      `json:"timestamp"`
	UserID     string         `json:"user_id"`
	VariantID  string         `json:"variant_id,omitempty"`
	CampaignID string         `json:"campaign_id,omitempty"`
}

// HasVariant reports whether the event carries a variant tag
func (e Event) HasVariant() bool {
	return e.VariantID != ""
}

// FunnelCounts holds per-variant counts of the view, click and donation stages
type FunnelCounts struct {
	Views     int `json:"views"`
	Clicks    int `json:"clicks"`
	Donations int `json:"donations"`
}

// Snapshot is an aggregate view recomputed from the full event log
type Snapshot struct {
	TotalEvents  int                     `json:"total_events"`
	UniqueUsers  int                     `json:"unique_users"`
	EventTypes   map[string]int          `json:"event_types"`
	VariantData  map[string]FunnelCounts `json:"variant_data"`
	RecentEvents []Event                 `json:"recent_events"`
}
