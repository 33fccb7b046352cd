package campaign

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestMemoryStore_GetCampaign(t *testing.T) {
	store := NewMemoryStore(nil, DemoCampaign(testNow))

	c, err := store.GetCampaign(context.Background(), "demo-campaign")

	require.NoError(t, err)
	assert.Equal(t, "Community Center Building Fund", c.Name)
	assert.Equal(t, 50000.0, c.TotalGoal)
	assert.Equal(t, 17250.0, c.CurrentRaised)
}

func TestMemoryStore_GetCampaign_NotFound(t *testing.T) {
	store := NewMemoryStore(nil)

	_, err := store.GetCampaign(context.Background(), "missing")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "missing")
}

func TestMemoryStore_ApplyDonation(t *testing.T) {
	later := testNow.Add(time.Hour)
	store := NewMemoryStore(func() time.Time { return later }, DemoCampaign(testNow))
	ctx := context.Background()

	c, err := store.ApplyDonation(ctx, "demo-campaign", 250)

	require.NoError(t, err)
	assert.Equal(t, 17500.0, c.CurrentRaised)
	assert.Equal(t, later, c.UpdatedAt)
	assert.Equal(t, testNow, c.CreatedAt)

	reloaded, err := store.GetCampaign(ctx, "demo-campaign")
	require.NoError(t, err)
	assert.Equal(t, 17500.0, reloaded.CurrentRaised)
}

func TestMemoryStore_ApplyDonation_Errors(t *testing.T) {
	store := NewMemoryStore(nil, DemoCampaign(testNow))
	ctx := context.Background()

	_, err := store.ApplyDonation(ctx, "missing", 10)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.ApplyDonation(ctx, "demo-campaign", 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestMemoryStore_ReturnedCampaignIsCopy(t *testing.T) {
	store := NewMemoryStore(nil, DemoCampaign(testNow))
	ctx := context.Background()

	c, _ := store.GetCampaign(ctx, "demo-campaign")
	c.CurrentRaised = 0

	fresh, _ := store.GetCampaign(ctx, "demo-campaign")
	assert.Equal(t, 17250.0, fresh.CurrentRaised)
}
