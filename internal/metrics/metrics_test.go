package metrics

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveAssignment("variant_a", "computed")
	m.ObserveAssignment("variant_a", "cached")
	m.ObserveAssignment("variant_a", "cached")
	m.ObserveEventRecorded("page_view")
	m.IncrementExportFailures()
	m.AddDonation(25)
	m.AddDonation(-5)
	m.ObserveArchived("inserted", 3)
	m.ObserveArchived("malformed", 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Assignments.WithLabelValues("variant_a", "computed")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Assignments.WithLabelValues("variant_a", "cached")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsRecorded.WithLabelValues("page_view")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ExportFailures))
	assert.Equal(t, 25.0, testutil.ToFloat64(m.DonationsAmount))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.EventsArchived.WithLabelValues("inserted")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.EventsArchived.WithLabelValues("malformed")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveAssignment("control", "computed")
		m.ObserveEventRecorded("cta_click")
		m.IncrementExportFailures()
		m.AddDonation(10)
		m.ObserveArchived("failed", 2)
	})
}

func TestMetrics_ObserveEventRecorded_BoundsEventTypeLabel(t *testing.T) {
	m := New(prometheus.NewRegistry())

	for i := 0; i < 500; i++ {
		m.ObserveEventRecorded(fmt.Sprintf("evt_%d", i))
	}
	m.ObserveEventRecorded("page_view")
	m.ObserveEventRecorded("cta_click")
	m.ObserveEventRecorded("donation_successful")
	m.ObserveEventRecorded("experiment_exposure")

	assert.Equal(t, 5, testutil.CollectAndCount(m.EventsRecorded))
	assert.Equal(t, 500.0, testutil.ToFloat64(m.EventsRecorded.WithLabelValues("other")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsRecorded.WithLabelValues("experiment_exposure")))
}

func TestMetrics_ExportFailuresName(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.IncrementExportFailures()

	count, err := testutil.GatherAndCount(reg, "impactflow_export_failures_total")

	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}
