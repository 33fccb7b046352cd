package experiment

import (
	"context"

	"go.uber.org/zap"

	"github.com/Harun1302123/impact-flow-optimizer-project/internal/domain"
	"github.com/Harun1302123/impact-flow-optimizer-project/internal/metrics"
)

// Assigner maps users to experiment variants. It is constructed once at startup
// and shared by every caller; the store carries all mutable state.
type Assigner struct {
	store   AssignmentStore
	metrics *metrics.Metrics
	log     *zap.Logger
}

// NewAssigner creates an assigner backed by store
func NewAssigner(store AssignmentStore, m *metrics.Metrics, log *zap.Logger) *Assigner {
	return &Assigner{
		store:   store,
		metrics: m,
		log:     log,
	}
}

// Assign returns the variant for key. A stored assignment is returned unchanged;
// otherwise the variant is computed from the hash and stored. Store failures are
// logged and the computed variant is returned, so Assign never fails.
func (a *Assigner) Assign(ctx context.Context, key domain.AssignmentKey) domain.Variant {
	stored, ok, err := a.store.Get(ctx, key)
	if err != nil {
		a.log.Warn("Assignment lookup failed, computing variant",
			zap.String("user_id", key.UserID),
			zap.String("experiment_id", key.ExperimentID),
			zap.Error(err))
	}
	if ok {
		a.metrics.ObserveAssignment(stored.String(), "cached")
		return stored
	}

	variant := VariantFor(key)

	effective, err := a.store.PutIfAbsent(ctx, key, variant)
	if err != nil {
		a.log.Warn("Failed to store assignment",
			zap.String("user_id", key.UserID),
			zap.String("experiment_id", key.ExperimentID),
			zap.Error(err))
		effective = variant
	}

	a.metrics.ObserveAssignment(effective.String(), "computed")
	a.log.Debug("Variant assigned",
		zap.String("user_id", key.UserID),
		zap.String("experiment_id", key.ExperimentID),
		zap.String("variant", effective.String()))

	return effective
}

// Assignments returns the number of memoized assignments
func (a *Assigner) Assignments(ctx context.Context) (int, error) {
	return a.store.Len(ctx)
}
