package experiment

import (
	"context"

	"github.com/Harun1302123/impact-flow-optimizer-project/internal/domain"
)

// AssignmentStore memoizes variant assignments
type AssignmentStore interface {
	// Get returns the stored variant for key, or false if none is stored
	Get(ctx context.Context, key domain.AssignmentKey) (domain.Variant, bool, error)

	// PutIfAbsent stores variant unless key already has one, and returns the
	// variant that is stored after the call
	PutIfAbsent(ctx context.Context, key domain.AssignmentKey, variant domain.Variant) (domain.Variant, error)

	// Len returns the number of stored assignments
	Len(ctx context.Context) (int, error)
}
