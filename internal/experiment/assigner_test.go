package experiment

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/Harun1302123/impact-flow-optimizer-project/internal/domain"
	"github.com/Harun1302123/impact-flow-optimizer-project/internal/metrics"
)

// MockAssignmentStore is a mock implementation of AssignmentStore
type MockAssignmentStore struct {
	mock.Mock
}

func (m *MockAssignmentStore) Get(ctx context.Context, key domain.AssignmentKey) (domain.Variant, bool, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(domain.Variant), args.Bool(1), args.Error(2)
}

func (m *MockAssignmentStore) PutIfAbsent(ctx context.Context, key domain.AssignmentKey, variant domain.Variant) (domain.Variant, error) {
	args := m.Called(ctx, key, variant)
	return args.Get(0).(domain.Variant), args.Error(1)
}

func (m *MockAssignmentStore) Len(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func TestAssigner_Assign_Deterministic(t *testing.T) {
	assigner := NewAssigner(NewMemoryStore(0), nil, zap.NewNop())
	ctx := context.Background()
	key := domain.AssignmentKey{UserID: "user_1", ExperimentID: "exp_A"}

	first := assigner.Assign(ctx, key)
	second := assigner.Assign(ctx, key)

	assert.Equal(t, first, second)
	assert.Contains(t, domain.Variants[:], first)
	assert.Equal(t, domain.VariantA, first)
}

func TestAssigner_Assign_ReturnsStoredVariantWithoutRehash(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()
	key := domain.AssignmentKey{UserID: "user_1", ExperimentID: "exp_A"}
	// hash would choose variant_a
	_, _ = store.PutIfAbsent(ctx, key, domain.VariantB)

	assigner := NewAssigner(store, nil, zap.NewNop())

	assert.Equal(t, domain.VariantB, assigner.Assign(ctx, key))
}

func TestAssigner_Assign_Memoizes(t *testing.T) {
	ctx := context.Background()
	assigner := NewAssigner(NewMemoryStore(0), nil, zap.NewNop())

	assigner.Assign(ctx, domain.AssignmentKey{UserID: "u1", ExperimentID: "exp"})
	assigner.Assign(ctx, domain.AssignmentKey{UserID: "u1", ExperimentID: "exp"})
	assigner.Assign(ctx, domain.AssignmentKey{UserID: "u2", ExperimentID: "exp"})

	n, err := assigner.Assignments(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestAssigner_Assign_EmptyKeyAccepted(t *testing.T) {
	assigner := NewAssigner(NewMemoryStore(0), nil, zap.NewNop())

	v := assigner.Assign(context.Background(), domain.AssignmentKey{})

	assert.Equal(t, domain.VariantControl, v)
}

func TestAssigner_Assign_StoreFailureFallsBackToHash(t *testing.T) {
	store := new(MockAssignmentStore)
	key := domain.AssignmentKey{UserID: "alice", ExperimentID: "donation-optimization-v1"}

	store.On("Get", mock.Anything, key).Return(domain.Variant(""), false, errors.New("connection refused"))
	store.On("PutIfAbsent", mock.Anything, key, domain.VariantB).Return(domain.Variant(""), errors.New("connection refused"))

	assigner := NewAssigner(store, nil, zap.NewNop())

	assert.Equal(t, domain.VariantB, assigner.Assign(context.Background(), key))
	store.AssertExpectations(t)
}

func TestAssigner_Assign_UsesWinningWriter(t *testing.T) {
	store := new(MockAssignmentStore)
	key := domain.AssignmentKey{UserID: "alice", ExperimentID: "donation-optimization-v1"}

	store.On("Get", mock.Anything, key).Return(domain.Variant(""), false, nil)
	store.On("PutIfAbsent", mock.Anything, key, domain.VariantB).Return(domain.VariantControl, nil)

	assigner := NewAssigner(store, nil, zap.NewNop())

	assert.Equal(t, domain.VariantControl, assigner.Assign(context.Background(), key))
}

func TestAssigner_Assign_Metrics(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	assigner := NewAssigner(NewMemoryStore(0), m, zap.NewNop())
	ctx := context.Background()
	key := domain.AssignmentKey{UserID: "user_2", ExperimentID: "exp_A"}

	assigner.Assign(ctx, key)
	assigner.Assign(ctx, key)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Assignments.WithLabelValues("control", "computed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Assignments.WithLabelValues("control", "cached")))
}

func TestAssigner_Assign_StableAcrossEviction(t *testing.T) {
	store := NewMemoryStore(1)
	m := metrics.New(prometheus.NewRegistry())
	assigner := NewAssigner(store, m, zap.NewNop())
	ctx := context.Background()
	k1 := domain.AssignmentKey{UserID: "user_1", ExperimentID: "exp_A"}
	k2 := domain.AssignmentKey{UserID: "user_2", ExperimentID: "exp_A"}

	first := assigner.Assign(ctx, k1)
	assert.Equal(t, domain.VariantControl, assigner.Assign(ctx, k2))

	_, ok, err := store.Get(ctx, k1)
	assert.NoError(t, err)
	assert.False(t, ok, "k1 should have been evicted by k2")

	again := assigner.Assign(ctx, k1)

	assert.Equal(t, first, again)
	assert.Equal(t, VariantFor(k1), again)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Assignments.WithLabelValues(string(first), "computed")))
}
