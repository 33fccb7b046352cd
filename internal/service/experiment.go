package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Harun1302123/impact-flow-optimizer-project/internal/domain"
	"github.com/Harun1302123/impact-flow-optimizer-project/internal/dto"
)

// ExperimentService ties variant assignment to the analytics log. The assigner
// and the recorder never call each other; only this service sees both.
type ExperimentService struct {
	assigner VariantAssigner
	recorder EventRecorder
	log      *zap.Logger
}

// NewExperimentService creates a new experiment service
func NewExperimentService(assigner VariantAssigner, recorder EventRecorder, log *zap.Logger) *ExperimentService {
	return &ExperimentService{
		assigner: assigner,
		recorder: recorder,
		log:      log,
	}
}

// AssignVariant returns the user's variant and records an experiment_exposure event
func (s *ExperimentService) AssignVariant(ctx context.Context, req *dto.AssignVariantRequest) (*dto.AssignVariantResponse, error) {
	if req.UserID == "" || req.ExperimentID == "" {
		return nil, fmt.Errorf("%w: user_id and experiment_id are required", ErrValidation)
	}

	variant := s.assigner.Assign(ctx, domain.AssignmentKey{
		UserID:       req.UserID,
		ExperimentID: req.ExperimentID,
	})

	s.recorder.Record(ctx, domain.EventTypeExperimentExposure, map[string]any{
		"experiment_id": req.ExperimentID,
		"variant_id":    variant.String(),
		"user_id":       req.UserID,
	}, req.UserID)

	return &dto.AssignVariantResponse{
		ExperimentID: req.ExperimentID,
		UserID:       req.UserID,
		Variant:      variant.String(),
	}, nil
}

// TrackEvent appends a single event to the log
func (s *ExperimentService) TrackEvent(ctx context.Context, req *dto.TrackEventRequest) (*dto.TrackEventResponse, error) {
	if req.EventType == "" {
		return nil, fmt.Errorf("%w: event_type is required", ErrValidation)
	}
	if req.UserID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrValidation)
	}

	event := s.recorder.Record(ctx, req.EventType, req.Payload, req.UserID)

	return &dto.TrackEventResponse{
		EventID: event.ID,
		Status:  "recorded",
	}, nil
}

// TrackBulkEvents records each valid event and reports the invalid ones by index
func (s *ExperimentService) TrackBulkEvents(ctx context.Context, events []dto.TrackEventRequest) ([]string, []string, error) {
	var eventIDs []string
	var errors []string

	for i := range events {
		resp, err := s.TrackEvent(ctx, &events[i])
		if err != nil {
			errors = append(errors, fmt.Sprintf("event %d: %s", i, err.Error()))
			s.log.Warn("Failed to track event in bulk",
				zap.Int("index", i),
				zap.Error(err),
				zap.String("event_type", events[i].EventType))
			continue
		}
		eventIDs = append(eventIDs, resp.EventID)
	}

	return eventIDs, errors, nil
}

// GetSnapshot returns the aggregate view plus the number of memoized assignments.
// The snapshot is served from the log alone; when the assignment store cannot be
// counted, Assignments is -1.
func (s *ExperimentService) GetSnapshot(ctx context.Context) (*dto.SnapshotResponse, error) {
	snap := s.recorder.Snapshot()

	assignments, err := s.assigner.Assignments(ctx)
	if err != nil {
		s.log.Warn("Failed to count assignments", zap.Error(err))
		assignments = -1
	}

	return &dto.SnapshotResponse{
		Snapshot:    snap,
		Assignments: assignments,
	}, nil
}

// ListEvents returns the log filtered by event type or by variant, in append order
func (s *ExperimentService) ListEvents(ctx context.Context, req *dto.ListEventsRequest) (*dto.ListEventsResponse, error) {
	var events []domain.Event

	switch {
	case req.EventType != "" && req.VariantID != "":
		return nil, fmt.Errorf("%w: filter by event_type or variant_id, not both", ErrValidation)
	case req.EventType != "":
		events = s.recorder.EventsByType(req.EventType)
	case req.VariantID != "":
		variant, ok := domain.ParseVariant(req.VariantID)
		if !ok {
			s.log.Warn("Invalid variant filter", zap.String("variant_id", req.VariantID))
			return nil, fmt.Errorf("%w: unknown variant_id %q (supported: control, variant_a, variant_b)", ErrValidation, req.VariantID)
		}
		events = s.recorder.EventsByVariant(variant)
	default:
		events = s.recorder.Events()
	}

	return &dto.ListEventsResponse{
		Count:  len(events),
		Events: events,
	}, nil
}
