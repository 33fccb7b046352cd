package campaign

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("campaign not found")
	ErrInvalidAmount = errors.New("donation amount must be positive")
)

// Campaign is a fundraising campaign with a running total
type Campaign struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	TotalGoal     float64   `json:"total_goal"`
	CurrentRaised float64   `json:"current_raised"`
	Description   string    `json:"description,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Progress returns CurrentRaised as a fraction of TotalGoal
func (c Campaign) Progress() float64 {
	if c.TotalGoal <= 0 {
		return 0
	}
	return c.CurrentRaised / c.TotalGoal
}

// Store defines campaign storage operations
type Store interface {
	// GetCampaign returns the campaign or an error wrapping ErrNotFound
	GetCampaign(ctx context.Context, id string) (*Campaign, error)

	// ApplyDonation adds amount to the raised total and returns the updated campaign
	ApplyDonation(ctx context.Context, id string, amount float64) (*Campaign, error)
}

// DemoCampaign is the campaign every fresh store starts with
func DemoCampaign(now time.Time) Campaign {
	return Campaign{
		ID:            "demo-campaign",
		Name:          "Community Center Building Fund",
		TotalGoal:     50000,
		CurrentRaised: 17250,
		Description:   "Help us build a community center for our neighborhood",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
