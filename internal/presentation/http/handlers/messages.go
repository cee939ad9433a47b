package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blindcal/blindcal-go/internal/application/services"
	"github.com/blindcal/blindcal-go/internal/infrastructure/messaging"
	"github.com/blindcal/blindcal-go/internal/infrastructure/observability/logging"
	"github.com/blindcal/blindcal-go/internal/infrastructure/observability/performance"
	"github.com/blindcal/blindcal-go/internal/infrastructure/tenant"
	"github.com/blindcal/blindcal-go/internal/presentation/http/middleware"
)

// MessageHandlers contains masked messaging HTTP handlers
type MessageHandlers struct {
	broadcaster *messaging.PipelineBroadcaster
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewMessageHandlers creates message handlers with injected dependencies
func NewMessageHandlers(broadcaster *messaging.PipelineBroadcaster, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *MessageHandlers {
	return &MessageHandlers{
		broadcaster: broadcaster,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

func (h *MessageHandlers) service(tenantCtx *tenant.Context) *services.MessageService {
	return services.NewMessageService(
		tenantCtx.MessageRepo(),
		tenantCtx.CandidateRepo(),
		tenantCtx.CampaignRepo(),
		tenantCtx.DelegationRepo(),
		tenantCtx.ProfileRepo(),
		h.broadcaster,
		h.logger,
	)
}

// PostMessage handles POST /api/v1/candidates/:id/messages - campaign side sends
func (h *MessageHandlers) PostMessage(c *gin.Context) {
	tenantCtx, exists := middleware.GetTenantContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return
	}
	session, exists := middleware.GetSession(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	marker := h.perfTracker.StartOperation("post_campaign_message", tenantCtx.TenantID)
	defer marker.Complete()

	candidateID := c.Param("id")
	if candidateID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "candidate ID is required"})
		return
	}

	var req services.SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	message, err := h.service(tenantCtx).SendFromCampaign(tenantCtx.TenantID, candidateID, session.ProfileID, session.Role, &req)
	if err != nil {
		marker.SetError(err)
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusCreated, message)
}

// PostReply handles POST /c/candidates/:id/messages - a candidate replies by
// presenting the email they applied with.
func (h *MessageHandlers) PostReply(c *gin.Context) {
	tenantCtx, exists := middleware.GetTenantContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return
	}

	candidateID := c.Param("id")
	if candidateID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "candidate ID is required"})
		return
	}

	var req struct {
		Email string `json:"email" binding:"required,email"`
		Body  string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	message, err := h.service(tenantCtx).SendFromCandidate(tenantCtx.TenantID, candidateID, req.Email, &services.SendRequest{Body: req.Body})
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, message)
}

// GetThread handles GET /api/v1/candidates/:id/messages
func (h *MessageHandlers) GetThread(c *gin.Context) {
	tenantCtx, exists := middleware.GetTenantContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return
	}

	candidateID := c.Param("id")
	if candidateID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "candidate ID is required"})
		return
	}

	thread, messages, err := h.service(tenantCtx).GetThread(tenantCtx.TenantID, candidateID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if thread == nil {
		c.JSON(http.StatusOK, gin.H{"thread": nil, "messages": []any{}, "count": 0})
		return
	}

	c.JSON(http.StatusOK, gin.H{"thread": thread, "messages": messages, "count": len(messages)})
}

// GetThreads handles GET /api/v1/campaigns/:id/threads
func (h *MessageHandlers) GetThreads(c *gin.Context) {
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

	threads, err := h.service(tenantCtx).ListThreads(tenantCtx.TenantID, campaignID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"threads": threads, "count": len(threads)})
}
