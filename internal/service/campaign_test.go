package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Harun1302123/impact-flow-optimizer-project/internal/analytics"
	"github.com/Harun1302123/impact-flow-optimizer-project/internal/campaign"
	"github.com/Harun1302123/impact-flow-optimizer-project/internal/domain"
	"github.com/Harun1302123/impact-flow-optimizer-project/internal/dto"
	"github.com/Harun1302123/impact-flow-optimizer-project/internal/metrics"
)

// MockCampaignStore is a mock implementation of campaign.Store
type MockCampaignStore struct {
	mock.Mock
}

func (m *MockCampaignStore) GetCampaign(ctx context.Context, id string) (*campaign.Campaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*campaign.Campaign), args.Error(1)
}

func (m *MockCampaignStore) ApplyDonation(ctx context.Context, id string, amount float64) (*campaign.Campaign, error) {
	args := m.Called(ctx, id, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*campaign.Campaign), args.Error(1)
}

func demoCampaign() campaign.Campaign {
	return campaign.DemoCampaign(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
}

func TestCampaignService_GetCampaign(t *testing.T) {
	store := new(MockCampaignStore)
	c := demoCampaign()
	store.On("GetCampaign", mock.Anything, "demo-campaign").Return(&c, nil)

	service := NewCampaignService(store, nil, nil, zap.NewNop())

	resp, err := service.GetCampaign(context.Background(), "demo-campaign")

	require.NoError(t, err)
	assert.Equal(t, "Community Center Building Fund", resp.Name)
	assert.InDelta(t, 34.5, resp.ProgressPercent, 1e-9)
	store.AssertExpectations(t)
}

func TestCampaignService_GetCampaign_NotFound(t *testing.T) {
	store := new(MockCampaignStore)
	store.On("GetCampaign", mock.Anything, "missing").Return(nil, fmt.Errorf("campaign missing: %w", campaign.ErrNotFound))

	service := NewCampaignService(store, nil, nil, zap.NewNop())

	_, err := service.GetCampaign(context.Background(), "missing")

	assert.ErrorIs(t, err, campaign.ErrNotFound)
}

func TestCampaignService_Donate_RecordsDonationEvent(t *testing.T) {
	log := zap.NewNop()
	agg := analytics.NewAggregator(analytics.AggregatorConfig{}, nil, nil, log)
	m := metrics.New(prometheus.NewRegistry())
	store := campaign.NewMemoryStore(nil, demoCampaign())
	service := NewCampaignService(store, agg, m, log)

	resp, err := service.Donate(context.Background(), "demo-campaign", &dto.DonationRequest{
		Amount:    100,
		UserID:    "user_1",
		VariantID: "variant_a",
	})

	require.NoError(t, err)
	assert.Equal(t, 17350.0, resp.CurrentRaised)

	snap := agg.Snapshot()
	assert.Equal(t, domain.FunnelCounts{Donations: 1}, snap.VariantData["variant_a"])
	donations := agg.EventsByType(domain.EventTypeDonationSuccessful)
	require.Len(t, donations, 1)
	assert.Equal(t, "demo-campaign", donations[0].CampaignID)
	assert.Equal(t, 100.0, donations[0].Payload["amount"])
	assert.Equal(t, 100.0, testutil.ToFloat64(m.DonationsAmount))
}

func TestCampaignService_Donate_UntaggedDonation(t *testing.T) {
	log := zap.NewNop()
	agg := analytics.NewAggregator(analytics.AggregatorConfig{}, nil, nil, log)
	service := NewCampaignService(campaign.NewMemoryStore(nil, demoCampaign()), agg, nil, log)

	_, err := service.Donate(context.Background(), "demo-campaign", &dto.DonationRequest{Amount: 10, UserID: "user_1"})

	require.NoError(t, err)
	assert.Empty(t, agg.Snapshot().VariantData)
	assert.Equal(t, 1, agg.Snapshot().EventTypes[domain.EventTypeDonationSuccessful])
}

func TestCampaignService_Donate_UnknownCampaign(t *testing.T) {
	log := zap.NewNop()
	agg := analytics.NewAggregator(analytics.AggregatorConfig{}, nil, nil, log)
	service := NewCampaignService(campaign.NewMemoryStore(nil), agg, nil, log)

	_, err := service.Donate(context.Background(), "missing", &dto.DonationRequest{Amount: 10, UserID: "user_1"})

	assert.ErrorIs(t, err, campaign.ErrNotFound)
	assert.Equal(t, 0, agg.Len())
}

func TestCampaignService_Donate_InvalidVariant(t *testing.T) {
	store := new(MockCampaignStore)
	service := NewCampaignService(store, nil, nil, zap.NewNop())

	_, err := service.Donate(context.Background(), "demo-campaign", &dto.DonationRequest{Amount: 10, UserID: "user_1", VariantID: "variant_q"})

	assert.ErrorIs(t, err, ErrValidation)
	store.AssertNotCalled(t, "ApplyDonation")
}

func TestCampaignService_Donate_StoreError(t *testing.T) {
	store := new(MockCampaignStore)
	store.On("ApplyDonation", mock.Anything, "demo-campaign", 10.0).Return(nil, errors.New("connection reset"))
	service := NewCampaignService(store, nil, nil, zap.NewNop())

	_, err := service.Donate(context.Background(), "demo-campaign", &dto.DonationRequest{Amount: 10, UserID: "user_1"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to apply donation")
}

func TestCampaignService_GetOptimization(t *testing.T) {
	store := new(MockCampaignStore)
	c := demoCampaign()
	store.On("GetCampaign", mock.Anything, "demo-campaign").Return(&c, nil)
	service := NewCampaignService(store, nil, nil, zap.NewNop())

	resp, err := service.GetOptimization(context.Background(), "demo-campaign")

	require.NoError(t, err)
	assert.Equal(t, "demo-campaign", resp.CampaignID)
	assert.Equal(t, 25000.0, resp.MicroGoal.Amount)
	assert.Equal(t, "blue", resp.CTA.Color)
}
