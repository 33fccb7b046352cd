package service

import (
	"context"
	"errors"

	"github.com/Harun1302123/impact-flow-optimizer-project/internal/domain"
	"github.com/Harun1302123/impact-flow-optimizer-project/internal/dto"
)

// ErrValidation marks errors caused by malformed caller input
var ErrValidation = errors.New("validation error")

// ExperimentServicer defines the interface for experiment and analytics operations
type ExperimentServicer interface {
	AssignVariant(ctx context.Context, req *dto.AssignVariantRequest) (*dto.AssignVariantResponse, error)
	TrackEvent(ctx context.Context, req *dto.TrackEventRequest) (*dto.TrackEventResponse, error)
	TrackBulkEvents(ctx context.Context, events []dto.TrackEventRequest) ([]string, []string, error)
	GetSnapshot(ctx context.Context) (*dto.SnapshotResponse, error)
	ListEvents(ctx context.Context, req *dto.ListEventsRequest) (*dto.ListEventsResponse, error)
}

// CampaignServicer defines the interface for campaign operations
type CampaignServicer interface {
	GetCampaign(ctx context.Context, id string) (*dto.CampaignResponse, error)
	Donate(ctx context.Context, id string, req *dto.DonationRequest) (*dto.CampaignResponse, error)
	GetOptimization(ctx context.Context, id string) (*dto.OptimizationResponse, error)
}

// VariantAssigner assigns users to experiment variants
type VariantAssigner interface {
	Assign(ctx context.Context, key domain.AssignmentKey) domain.Variant
	Assignments(ctx context.Context) (int, error)
}

// EventRecorder is the event log the services write to and read from
type EventRecorder interface {
	Record(ctx context.Context, eventType string, payload map[string]any, userID string) domain.Event
	Snapshot() domain.Snapshot
	Events() []domain.Event
	EventsByType(eventType string) []domain.Event
	EventsByVariant(variant domain.Variant) []domain.Event
}
