package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/Harun1302123/impact-flow-optimizer-project/docs"
	"github.com/Harun1302123/impact-flow-optimizer-project/internal/campaign"
	"github.com/Harun1302123/impact-flow-optimizer-project/internal/dto"
	"github.com/Harun1302123/impact-flow-optimizer-project/internal/service"
)

type Handler struct {
	experimentService service.ExperimentServicer
	campaignService   service.CampaignServicer
	gatherer          prometheus.Gatherer
	router            *gin.Engine
	log               *zap.Logger
}

// NewHandler wires the HTTP routes. A nil gatherer exposes the default registry.
func NewHandler(experimentService service.ExperimentServicer, campaignService service.CampaignServicer, gatherer prometheus.Gatherer, log *zap.Logger) *Handler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	h := &Handler{
		experimentService: experimentService,
		campaignService:   campaignService,
		gatherer:          gatherer,
		router:            gin.Default(),
		log:               log,
	}

	h.registerRoutes()

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.router.GET("/health", h.healthCheck)
	h.router.GET("/experiments/:experiment_id/variant", h.assignVariant)
	h.router.POST("/events", h.trackEvent)
	h.router.POST("/events/bulk", h.trackEventsBulk)
	h.router.GET("/events", h.listEvents)
	h.router.GET("/analytics/snapshot", h.getSnapshot)
	h.router.GET("/campaigns/:campaign_id", h.getCampaign)
	h.router.POST("/campaigns/:campaign_id/donations", h.donate)
	h.router.GET("/campaigns/:campaign_id/optimization", h.getOptimization)
	h.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})))
	h.router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheck handles health check requests
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// assignVariant handles GET /experiments/:experiment_id/variant
// @Summary Assign a variant
// @Description Return the user's stable variant for the experiment and record an exposure event
// @Tags experiments
// @Produce json
// @Param experiment_id path string true "Experiment ID" example:"donation-optimization-v1"
// @Param user_id query string true "User ID" example:"user_123"
// @Success 200 {object} dto.AssignVariantResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /experiments/{experiment_id}/variant [get]
func (h *Handler) assignVariant(c *gin.Context) {
	var req dto.AssignVariantRequest

	if err := c.ShouldBindQuery(&req); err != nil {
		h.validationError(c, "Invalid variant request", err)
		return
	}
	if err := c.ShouldBindUri(&req); err != nil {
		h.validationError(c, "Invalid variant request", err)
		return
	}

	response, err := h.experimentService.AssignVariant(c.Request.Context(), &req)
	if err != nil {
		h.serviceError(c, "Failed to assign variant", err,
			zap.String("experiment_id", req.ExperimentID),
			zap.String("user_id", req.UserID))
		return
	}

	c.JSON(http.StatusOK, response)
}

// trackEvent handles POST /events
// @Summary Record a single event
// @Description Append one analytics event to the log
// @Tags events
// @Accept json
// @Produce json
// @Param event body dto.TrackEventRequest true "Event data"
// @Success 201 {object} dto.TrackEventResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /events [post]
func (h *Handler) trackEvent(c *gin.Context) {
	var req dto.TrackEventRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid event request",
			zap.Error(err),
			zap.String("event_type", req.EventType))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	response, err := h.experimentService.TrackEvent(c.Request.Context(), &req)
	if err != nil {
		h.serviceError(c, "Failed to record event", err,
			zap.String("event_type", req.EventType),
			zap.String("user_id", req.UserID))
		return
	}

	h.log.Debug("Event recorded",
		zap.String("event_id", response.EventID),
		zap.String("event_type", req.EventType))

	c.JSON(http.StatusCreated, response)
}

// trackEventsBulk handles POST /events/bulk
// @Summary Record multiple events
// @Description Append up to 1000 analytics events; invalid entries are reported by index
// @Tags events
// @Accept json
// @Produce json
// @Param events body dto.TrackEventsBulkRequest true "Bulk events data"
// @Success 201 {object} dto.TrackBulkEventsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /events/bulk [post]
func (h *Handler) trackEventsBulk(c *gin.Context) {
	var bulkRequest dto.TrackEventsBulkRequest

	if err := c.ShouldBindJSON(&bulkRequest); err != nil {
		h.validationError(c, "Invalid bulk event request", err)
		return
	}

	eventIDs, rejections, err := h.experimentService.TrackBulkEvents(c.Request.Context(), bulkRequest.Events)
	if err != nil {
		h.serviceError(c, "Failed to record bulk events", err,
			zap.Int("event_count", len(bulkRequest.Events)))
		return
	}

	accepted := len(eventIDs)
	rejected := len(rejections)

	h.log.Info("Bulk events recorded",
		zap.Int("accepted", accepted),
		zap.Int("rejected", rejected),
		zap.Int("total", len(bulkRequest.Events)))

	c.JSON(http.StatusCreated, dto.TrackBulkEventsResponse{
		Accepted: accepted,
		Rejected: rejected,
		EventIDs: eventIDs,
		Errors:   rejections,
	})
}

// listEvents handles GET /events
// @Summary List events
// @Description List the event log in append order, optionally filtered by event type or variant
// @Tags events
// @Produce json
// @Param event_type query string false "Event type" example:"page_view"
// @Param variant_id query string false "Variant" Enums(control, variant_a, variant_b)
// @Success 200 {object} dto.ListEventsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /events [get]
func (h *Handler) listEvents(c *gin.Context) {
	var req dto.ListEventsRequest

	if err := c.ShouldBindQuery(&req); err != nil {
		h.validationError(c, "Invalid list request", err)
		return
	}

	response, err := h.experimentService.ListEvents(c.Request.Context(), &req)
	if err != nil {
		h.serviceError(c, "Failed to list events", err,
			zap.String("event_type", req.EventType),
			zap.String("variant_id", req.VariantID))
		return
	}

	c.JSON(http.StatusOK, response)
}

// getSnapshot handles GET /analytics/snapshot
// @Summary Get analytics snapshot
// @Description Totals, event type histogram, per-variant funnel counts and the ten most recent events
// @Tags analytics
// @Produce json
// @Success 200 {object} dto.SnapshotResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /analytics/snapshot [get]
func (h *Handler) getSnapshot(c *gin.Context) {
	response, err := h.experimentService.GetSnapshot(c.Request.Context())
	if err != nil {
		h.serviceError(c, "Failed to build snapshot", err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// getCampaign handles GET /campaigns/:campaign_id
// @Summary Get a campaign
// @Tags campaigns
// @Produce json
// @Param campaign_id path string true "Campaign ID" example:"demo-campaign"
// @Success 200 {object} dto.CampaignResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /campaigns/{campaign_id} [get]
func (h *Handler) getCampaign(c *gin.Context) {
	id := c.Param("campaign_id")

	response, err := h.campaignService.GetCampaign(c.Request.Context(), id)
	if err != nil {
		h.serviceError(c, "Failed to get campaign", err, zap.String("campaign_id", id))
		return
	}

	c.JSON(http.StatusOK, response)
}

// donate handles POST /campaigns/:campaign_id/donations
// @Summary Donate to a campaign
// @Description Add a donation to the raised total and record a donation_successful event
// @Tags campaigns
// @Accept json
// @Produce json
// @Param campaign_id path string true "Campaign ID" example:"demo-campaign"
// @Param donation body dto.DonationRequest true "Donation"
// @Success 200 {object} dto.CampaignResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /campaigns/{campaign_id}/donations [post]
func (h *Handler) donate(c *gin.Context) {
	id := c.Param("campaign_id")
	var req dto.DonationRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.validationError(c, "Invalid donation request", err)
		return
	}

	response, err := h.campaignService.Donate(c.Request.Context(), id, &req)
	if err != nil {
		h.serviceError(c, "Failed to apply donation", err,
			zap.String("campaign_id", id),
			zap.String("user_id", req.UserID))
		return
	}

	c.JSON(http.StatusOK, response)
}

// getOptimization handles GET /campaigns/:campaign_id/optimization
// @Summary Get campaign optimization
// @Description Micro-goal and call-to-action chosen from the campaign's progress
// @Tags campaigns
// @Produce json
// @Param campaign_id path string true "Campaign ID" example:"demo-campaign"
// @Success 200 {object} dto.OptimizationResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /campaigns/{campaign_id}/optimization [get]
func (h *Handler) getOptimization(c *gin.Context) {
	id := c.Param("campaign_id")

	response, err := h.campaignService.GetOptimization(c.Request.Context(), id)
	if err != nil {
		h.serviceError(c, "Failed to get optimization", err, zap.String("campaign_id", id))
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *Handler) validationError(c *gin.Context, msg string, err error) {
	h.log.Warn(msg, zap.Error(err))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "validation_error",
		Message: err.Error(),
	})
}

// serviceError maps service errors onto status codes
func (h *Handler) serviceError(c *gin.Context, msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.Error(err))

	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, campaign.ErrInvalidAmount):
		h.log.Warn(msg, fields...)
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
	case errors.Is(err, campaign.ErrNotFound):
		h.log.Warn(msg, fields...)
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "not_found",
			Message: err.Error(),
		})
	default:
		h.log.Error(msg, fields...)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
	}
}
