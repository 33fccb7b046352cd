package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Harun1302123/impact-flow-optimizer-project/internal/campaign"
	"github.com/Harun1302123/impact-flow-optimizer-project/internal/domain"
	"github.com/Harun1302123/impact-flow-optimizer-project/internal/dto"
	"github.com/Harun1302123/impact-flow-optimizer-project/internal/metrics"
)

// CampaignService serves campaigns, donations and optimization content
type CampaignService struct {
	store    campaign.Store
	recorder EventRecorder
	metrics  *metrics.Metrics
	log      *zap.Logger
}

// NewCampaignService creates a new campaign service
func NewCampaignService(store campaign.Store, recorder EventRecorder, m *metrics.Metrics, log *zap.Logger) *CampaignService {
	return &CampaignService{
		store:    store,
		recorder: recorder,
		metrics:  m,
		log:      log,
	}
}

func (s *CampaignService) GetCampaign(ctx context.Context, id string) (*dto.CampaignResponse, error) {
	c, err := s.store.GetCampaign(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	return toCampaignResponse(c), nil
}

// Donate applies the donation and records a donation_successful event tagged
// with the donor's variant
func (s *CampaignService) Donate(ctx context.Context, id string, req *dto.DonationRequest) (*dto.CampaignResponse, error) {
	if req.UserID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrValidation)
	}
	if req.VariantID != "" {
		if _, ok := domain.ParseVariant(req.VariantID); !ok {
			return nil, fmt.Errorf("%w: unknown variant_id %q", ErrValidation, req.VariantID)
		}
	}

	c, err := s.store.ApplyDonation(ctx, id, req.Amount)
	if err != nil {
		return nil, fmt.Errorf("failed to apply donation: %w", err)
	}
	s.metrics.AddDonation(req.Amount)

	payload := map[string]any{
		"amount":      req.Amount,
		"campaign_id": c.ID,
		"user_id":     req.UserID,
	}
	if req.VariantID != "" {
		payload["variant_id"] = req.VariantID
	}
	s.recorder.Record(ctx, domain.EventTypeDonationSuccessful, payload, req.UserID)

	s.log.Info("Donation applied",
		zap.String("campaign_id", c.ID),
		zap.Float64("amount", req.Amount),
		zap.Float64("current_raised", c.CurrentRaised),
		zap.String("variant_id", req.VariantID))

	return toCampaignResponse(c), nil
}

func (s *CampaignService) GetOptimization(ctx context.Context, id string) (*dto.OptimizationResponse, error) {
	c, err := s.store.GetCampaign(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	return &dto.OptimizationResponse{
		CampaignID:   c.ID,
		Optimization: campaign.Optimize(*c),
	}, nil
}

func toCampaignResponse(c *campaign.Campaign) *dto.CampaignResponse {
	return &dto.CampaignResponse{
		Campaign:        *c,
		ProgressPercent: c.Progress() * 100,
	}
}
