package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/blindcal/blindcal-go/internal/application/services"
	"github.com/blindcal/blindcal-go/internal/infrastructure/email"
	"github.com/blindcal/blindcal-go/internal/infrastructure/messaging"
	"github.com/blindcal/blindcal-go/internal/infrastructure/observability/logging"
	"github.com/blindcal/blindcal-go/internal/infrastructure/observability/performance"
	"github.com/blindcal/blindcal-go/internal/infrastructure/scheduling"
	"github.com/blindcal/blindcal-go/internal/infrastructure/tenant"
	"github.com/blindcal/blindcal-go/internal/presentation/http/middleware"
)

// BookingHandlers contains date scheduling HTTP handlers
type BookingHandlers struct {
	emailService email.Service
	broadcaster  *messaging.PipelineBroadcaster
	logger       *logging.ChanneledLogger
	perfTracker  *performance.Tracker
}

// NewBookingHandlers creates booking handlers with injected dependencies
func NewBookingHandlers(
	emailService email.Service,
	broadcaster *messaging.PipelineBroadcaster,
	logger *logging.ChanneledLogger,
	perfTracker *performance.Tracker,
) *BookingHandlers {
	return &BookingHandlers{
		emailService: emailService,
		broadcaster:  broadcaster,
		logger:       logger,
		perfTracker:  perfTracker,
	}
}

func (h *BookingHandlers) service(tenantCtx *tenant.Context) *services.BookingService {
	return services.NewBookingService(
		tenantCtx.BookingRepo(),
		tenantCtx.CandidateRepo(),
		tenantCtx.CampaignRepo(),
		tenantCtx.ProfileRepo(),
		h.emailService,
		h.broadcaster,
		h.logger,
	)
}

// provider builds the tenant's calendar provider. A tenant with no API key
// gets a disabled provider, local bookings still work.
func (h *BookingHandlers) provider(tenantCtx *tenant.Context) *scheduling.Provider {
	return scheduling.NewProvider(tenantCtx.Config.CalComAPIKey, h.logger)
}

// PostSchedule handles POST /api/v1/bookings - schedule a date with an approved candidate
func (h *BookingHandlers) PostSchedule(c *gin.Context) {
	tenantCtx, exists := middleware.GetTenantContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return
	}

	marker := h.perfTracker.StartOperation("post_booking_schedule", tenantCtx.TenantID)
	defer marker.Complete()

	var req services.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	booking, err := h.service(tenantCtx).Schedule(c.Request.Context(), tenantCtx.TenantID, &req, h.provider(tenantCtx))
	if err != nil {
		marker.SetError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusCreated, booking)
}

// PostCancel handles POST /api/v1/bookings/:id/cancel
func (h *BookingHandlers) PostCancel(c *gin.Context) {
	tenantCtx, exists := middleware.GetTenantContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return
	}

	bookingID := c.Param("id")
	if bookingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "booking ID is required"})
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	booking, err := h.service(tenantCtx).Cancel(c.Request.Context(), tenantCtx.TenantID, bookingID, req.Reason, h.provider(tenantCtx))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, booking)
}

// PostReschedule handles POST /api/v1/bookings/:id/reschedule
func (h *BookingHandlers) PostReschedule(c *gin.Context) {
	tenantCtx, exists := middleware.GetTenantContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return
	}

	bookingID := c.Param("id")
	if bookingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "booking ID is required"})
		return
	}

	var req struct {
		StartTime time.Time `json:"startTime" binding:"required"`
		EndTime   time.Time `json:"endTime" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	booking, err := h.service(tenantCtx).Reschedule(c.Request.Context(), tenantCtx.TenantID, bookingID, req.StartTime, req.EndTime, h.provider(tenantCtx))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, booking)
}

// PostComplete handles POST /api/v1/bookings/:id/complete
func (h *BookingHandlers) PostComplete(c *gin.Context) {
	tenantCtx, exists := middleware.GetTenantContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return
	}

	bookingID := c.Param("id")
	if bookingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "booking ID is required"})
		return
	}

	booking, err := h.service(tenantCtx).Complete(tenantCtx.TenantID, bookingID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, booking)
}

// PostNoShow handles POST /api/v1/bookings/:id/no-show
func (h *BookingHandlers) PostNoShow(c *gin.Context) {
	tenantCtx, exists := middleware.GetTenantContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return
	}

	bookingID := c.Param("id")
	if bookingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "booking ID is required"})
		return
	}

	booking, err := h.service(tenantCtx).MarkNoShow(tenantCtx.TenantID, bookingID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, booking)
}

// GetBookings handles GET /api/v1/campaigns/:id/bookings
func (h *BookingHandlers) GetBookings(c *gin.Context) {
	tenantCtx, exists := middleware.GetTenantContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return
	}

	campaignID := c.Param("id")
	if campaignID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "campaign ID is required"})
		return
	}

	bookings, err := h.service(tenantCtx).ListByCampaign(tenantCtx.TenantID, campaignID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "count": len(bookings)})
}

// GetAvailability handles GET /api/v1/bookings/availability
func (h *BookingHandlers) GetAvailability(c *gin.Context) {
	tenantCtx, exists := middleware.GetTenantContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return
	}

	var query struct {
		EventTypeID int       `form:"eventTypeId" binding:"required"`
		From        time.Time `form:"from" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
		To          time.Time `form:"to" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	slots, err := h.service(tenantCtx).Availability(c.Request.Context(), h.provider(tenantCtx), query.EventTypeID, query.From, query.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"slots": slots, "count": len(slots)})
}
