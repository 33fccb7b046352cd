package analytics

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Reporter periodically logs a snapshot summary
type Reporter struct {
	aggregator *Aggregator
	interval   time.Duration
	log        *zap.Logger
}

func NewReporter(aggregator *Aggregator, interval time.Duration, log *zap.Logger) *Reporter {
	return &Reporter{
		aggregator: aggregator,
		interval:   interval,
		log:        log,
	}
}

// Start logs a summary every interval until ctx is done
func (r *Reporter) Start(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Info("Snapshot reporter shutting down")
			return nil
		case <-ticker.C:
			r.report()
		}
	}
}

func (r *Reporter) report() {
	snap := r.aggregator.Snapshot()

	fields := []zap.Field{
		zap.Int("total_events", snap.TotalEvents),
		zap.Int("unique_users", snap.UniqueUsers),
		zap.Int("event_types", len(snap.EventTypes)),
	}
	for variant, funnel := range snap.VariantData {
		fields = append(fields, zap.Dict(variant,
			zap.Int("views", funnel.Views),
			zap.Int("clicks", funnel.Clicks),
			zap.Int("donations", funnel.Donations)))
	}

	r.log.Info("Analytics snapshot", fields...)
}
