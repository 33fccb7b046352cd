package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestReporter_Start_LogsSnapshots(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	agg := NewAggregator(AggregatorConfig{}, nil, nil, zap.NewNop())
	agg.Record(context.Background(), "page_view", map[string]any{"variant_id": "variant_a"}, "user_1")

	reporter := NewReporter(agg, 10*time.Millisecond, zap.New(core))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- reporter.Start(ctx) }()

	require.Eventually(t, func() bool {
		return logs.FilterMessage("Analytics snapshot").Len() > 0
	}, time.Second, 5*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)

	entry := logs.FilterMessage("Analytics snapshot").All()[0]
	assert.Equal(t, int64(1), entry.ContextMap()["total_events"])
	assert.Equal(t, int64(1), entry.ContextMap()["unique_users"])
}
