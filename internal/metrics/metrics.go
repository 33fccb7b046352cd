package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Harun1302123/impact-flow-optimizer-project/internal/domain"
)

// otherEventType labels every event type outside the well-known set
const otherEventType = "other"

var knownEventTypes = map[string]struct{}{
	domain.EventTypePageView:           {},
	domain.EventTypeCTAClick:           {},
	domain.EventTypeDonationSuccessful: {},
	domain.EventTypeExperimentExposure: {},
}

// Metrics holds the Prometheus collectors for assignment and event recording.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Assignments     *prometheus.CounterVec
	EventsRecorded  *prometheus.CounterVec
	ExportFailures  prometheus.Counter
	DonationsAmount prometheus.Counter
	EventsArchived  *prometheus.CounterVec
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Assignments: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "impactflow_variant_assignments_total",
			Help: "Variant lookups by variant and by whether the result came from the store",
		}, []string{"variant", "source"}),
		EventsRecorded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "impactflow_events_recorded_total",
			Help: "Events appended to the analytics log",
		}, []string{"event_type"}),
		ExportFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "impactflow_export_failures_total",
			Help: "Events that could not be forwarded to the export queue",
		}),
		DonationsAmount: factory.NewCounter(prometheus.CounterOpts{
			Name: "impactflow_donations_amount_total",
			Help: "Sum of donation amounts applied to campaigns",
		}),
		EventsArchived: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "impactflow_events_archived_total",
			Help: "Exported events handled by the archive consumer, by outcome",
		}, []string{"result"}),
	}
}

// ObserveAssignment counts one variant lookup; source is "cached" or "computed"
func (m *Metrics) ObserveAssignment(variant, source string) {
	if m == nil {
		return
	}
	m.Assignments.WithLabelValues(variant, source).Inc()
}

// ObserveEventRecorded counts one appended event. Event types are client input,
// so anything outside the well-known set is labelled "other".
func (m *Metrics) ObserveEventRecorded(eventType string) {
	if m == nil {
		return
	}
	if _, ok := knownEventTypes[eventType]; !ok {
		eventType = otherEventType
	}
	m.EventsRecorded.WithLabelValues(eventType).Inc()
}

func (m *Metrics) IncrementExportFailures() {
	if m == nil {
		return
	}
	m.ExportFailures.Inc()
}

func (m *Metrics) AddDonation(amount float64) {
	if m == nil || amount <= 0 {
		return
	}
	m.DonationsAmount.Add(amount)
}

// ObserveArchived counts n consumer outcomes: "inserted", "duplicate", "failed" or "malformed"
func (m *Metrics) ObserveArchived(result string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.EventsArchived.WithLabelValues(result).Add(float64(n))
}
