package dto

// TrackEventRequest represents a record event request
type TrackEventRequest struct {
	EventType string                 `json:"event_type" binding:"required" example:"cta_click"`
	UserID    string                 `json:"user_id" binding:"required" example:"user_1723475612_k3j9x2m1q"`
	Payload   map[string]interface{} `json:"payload" swaggertype:"object,string" example:"variant_id:variant_a,campaign_id:demo-campaign"`
}

// TrackEventsBulkRequest represents a bulk record request
type TrackEventsBulkRequest struct {
	Events []TrackEventRequest `json:"events" binding:"required,min=1,max=1000,dive"`
}

// AssignVariantRequest represents a variant assignment query
type AssignVariantRequest struct {
	ExperimentID string `uri:"experiment_id" example:"donation-optimization-v1"`
	UserID       string `form:"user_id" binding:"required" example:"user_123"`
}

// ListEventsRequest filters the event log by type or by variant
type ListEventsRequest struct {
	EventType string `form:"event_type" example:"page_view"`
	VariantID string `form:"variant_id" example:"variant_a"`
}

// DonationRequest represents a donation to a campaign
type DonationRequest struct {
	Amount    float64 `json:"amount" binding:"required,gt=0" example:"50"`
	UserID    string  `json:"user_id" binding:"required" example:"user_123"`
	VariantID string  `json:"variant_id" example:"variant_a"`
}
