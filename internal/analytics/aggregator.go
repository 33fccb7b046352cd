package analytics

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Harun1302123/impact-flow-optimizer-project/internal/domain"
	"github.com/Harun1302123/impact-flow-optimizer-project/internal/metrics"
	"github.com/Harun1302123/impact-flow-optimizer-project/internal/queue"
)

const (
	// DefaultRecentLimit is the size of the recent-events window in a snapshot
	DefaultRecentLimit = 10

	DefaultExportTimeout = 5 * time.Second
)

// AggregatorConfig configures the aggregator. Zero values select defaults.
type AggregatorConfig struct {
	RecentLimit   int
	ExportTimeout time.Duration
	Now           func() time.Time
	NewID         func() string
}

// Aggregator is an append-only event log with derived aggregate views.
// Writers and readers serialize on mu; the export publisher is called after
// the lock is released.
type Aggregator struct {
	mu     sync.RWMutex
	events []domain.Event

	config    AggregatorConfig
	publisher queue.QueuePublisher
	metrics   *metrics.Metrics
	log       *zap.Logger
}

// NewAggregator creates an empty aggregator. publisher may be nil.
func NewAggregator(config AggregatorConfig, publisher queue.QueuePublisher, m *metrics.Metrics, log *zap.Logger) *Aggregator {
	if config.RecentLimit <= 0 {
		config.RecentLimit = DefaultRecentLimit
	}
	if config.ExportTimeout <= 0 {
		config.ExportTimeout = DefaultExportTimeout
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	if config.NewID == nil {
		config.NewID = func() string { return uuid.New().String() }
	}

	return &Aggregator{
		config:    config,
		publisher: publisher,
		metrics:   m,
		log:       log,
	}
}

// Record appends an event and returns it. It always succeeds; a failed export
// is logged and counted but the event stays in the log.
func (a *Aggregator) Record(ctx context.Context, eventType string, payload map[string]any, userID string) domain.Event {
	data := make(map[string]any, len(payload))
	maps.Copy(data, payload)

	event := domain.Event{
		ID:         a.config.NewID(),
		EventType:  eventType,
		Payload:    data,
		UserID:     userID,
		VariantID:  tagValue(data, "variant_id", "variantId"),
		CampaignID: tagValue(data, "campaign_id", "campaignId"),
	}

	a.mu.Lock()
	event.Timestamp = a.config.Now()
	a.events = append(a.events, event)
	a.mu.Unlock()

	a.metrics.ObserveEventRecorded(eventType)
	a.log.Debug("Event recorded",
		zap.String("event_id", event.ID),
		zap.String("event_type", eventType),
		zap.String("user_id", userID),
		zap.String("variant_id", event.VariantID))

	out := cloneEvent(event)

	if a.publisher != nil {
		// the export outlives the request that recorded the event
		exportCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.config.ExportTimeout)
		err := a.publisher.PublishEvent(exportCtx, &out)
		cancel()
		if err != nil {
			a.metrics.IncrementExportFailures()
			a.log.Warn("Failed to export event",
				zap.String("event_id", event.ID),
				zap.String("event_type", eventType),
				zap.Error(err))
		}
	}

	return cloneEvent(event)
}

// Snapshot recomputes every aggregate from the full log
func (a *Aggregator) Snapshot() domain.Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()

	users := make(map[string]struct{})
	snap := domain.Snapshot{
		TotalEvents: len(a.events),
		EventTypes:  make(map[string]int),
		VariantData: make(map[string]domain.FunnelCounts),
	}

	for _, e := range a.events {
		users[e.UserID] = struct{}{}
		snap.EventTypes[e.EventType]++

		if !e.HasVariant() {
			continue
		}
		funnel := snap.VariantData[e.VariantID]
		switch e.EventType {
		case domain.EventTypePageView:
			funnel.Views++
		case domain.EventTypeCTAClick:
			funnel.Clicks++
		case domain.EventTypeDonationSuccessful:
			funnel.Donations++
		}
		snap.VariantData[e.VariantID] = funnel
	}
	snap.UniqueUsers = len(users)

	start := len(a.events) - a.config.RecentLimit
	if start < 0 {
		start = 0
	}
	snap.RecentEvents = make([]domain.Event, 0, len(a.events)-start)
	for i := len(a.events) - 1; i >= start; i-- {
		snap.RecentEvents = append(snap.RecentEvents, cloneEvent(a.events[i]))
	}

	return snap
}

// Events returns a copy of the full log in append order
func (a *Aggregator) Events() []domain.Event {
	return a.filter(func(domain.Event) bool { return true })
}

// EventsByType returns the events of one type in append order
func (a *Aggregator) EventsByType(eventType string) []domain.Event {
	return a.filter(func(e domain.Event) bool { return e.EventType == eventType })
}

// EventsByVariant returns the events tagged with variant in append order
func (a *Aggregator) EventsByVariant(variant domain.Variant) []domain.Event {
	return a.filter(func(e domain.Event) bool { return e.VariantID == string(variant) })
}

// Len returns the number of events in the log
func (a *Aggregator) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.events)
}

func (a *Aggregator) filter(keep func(domain.Event) bool) []domain.Event {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]domain.Event, 0)
	for _, e := range a.events {
		if keep(e) {
			out = append(out, cloneEvent(e))
		}
	}
	return out
}

// tagValue returns the first non-empty string stored under one of keys
func tagValue(payload map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := payload[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// cloneEvent copies the payload map so callers cannot reach the log. Nested
// values are shared.
func cloneEvent(e domain.Event) domain.Event {
	e.Payload = maps.Clone(e.Payload)
	return e
}
