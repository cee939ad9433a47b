package handlers

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/blindcal/blindcal-go/internal/application/services"
	"github.com/blindcal/blindcal-go/internal/infrastructure/media"
	"github.com/blindcal/blindcal-go/internal/infrastructure/observability/logging"
	"github.com/blindcal/blindcal-go/internal/infrastructure/observability/performance"
	"github.com/blindcal/blindcal-go/internal/infrastructure/tenant"
	"github.com/blindcal/blindcal-go/internal/presentation/http/middleware"
	"github.com/blindcal/blindcal-go/pkg/config"
)

// CampaignHandlers contains campaign lifecycle HTTP handlers
type CampaignHandlers struct {
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewCampaignHandlers creates campaign handlers with injected dependencies
func NewCampaignHandlers(logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *CampaignHandlers {
	return &CampaignHandlers{logger: logger, perfTracker: perfTracker}
}

func (h *CampaignHandlers) service(tenantCtx *tenant.Context) *services.CampaignService {
	return services.NewCampaignService(
		tenantCtx.CampaignRepo(),
		tenantCtx.DelegationRepo(),
		h.logger,
	)
}

// PostCreate handles POST /api/v1/campaigns - a wingman opens a campaign
func (h *CampaignHandlers) PostCreate(c *gin.Context) {
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

	marker := h.perfTracker.StartOperation("post_campaign_create", tenantCtx.TenantID)
	defer marker.Complete()

	var req services.CampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	campaign, err := h.service(tenantCtx).Create(tenantCtx.TenantID, session.ProfileID, &req)
	if err != nil {
		marker.SetError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusCreated, campaign)
}

// GetCampaigns handles GET /api/v1/campaigns - campaigns the wingman runs
func (h *CampaignHandlers) GetCampaigns(c *gin.Context) {
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

	campaigns, err := h.service(tenantCtx).ListByWingman(tenantCtx.TenantID, session.ProfileID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"campaigns": campaigns, "count": len(campaigns)})
}

// GetCampaign handles GET /api/v1/campaigns/:id
func (h *CampaignHandlers) GetCampaign(c *gin.Context) {
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

	campaign, err := h.service(tenantCtx).GetByID(tenantCtx.TenantID, campaignID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if campaign == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "campaign not found"})
		return
	}

	c.JSON(http.StatusOK, campaign)
}

// PutCampaign handles PUT /api/v1/campaigns/:id
func (h *CampaignHandlers) PutCampaign(c *gin.Context) {
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

	campaignID := c.Param("id")
	if campaignID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "campaign ID is required"})
		return
	}

	var req services.CampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	campaign, err := h.service(tenantCtx).Update(tenantCtx.TenantID, campaignID, session.ProfileID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, campaign)
}

// PostPublish handles POST /api/v1/campaigns/:id/publish
func (h *CampaignHandlers) PostPublish(c *gin.Context) {
	h.setPublished(c, true)
}

// PostUnpublish handles POST /api/v1/campaigns/:id/unpublish
func (h *CampaignHandlers) PostUnpublish(c *gin.Context) {
	h.setPublished(c, false)
}

func (h *CampaignHandlers) setPublished(c *gin.Context, published bool) {
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

	campaignID := c.Param("id")
	if campaignID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "campaign ID is required"})
		return
	}

	svc := h.service(tenantCtx)
	var err error
	var campaign any
	if published {
		campaign, err = svc.Publish(tenantCtx.TenantID, campaignID, session.ProfileID)
	} else {
		campaign, err = svc.Unpublish(tenantCtx.TenantID, campaignID, session.ProfileID)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, campaign)
}

// DeleteCampaign handles DELETE /api/v1/campaigns/:id - archives the campaign
// and removes its stored photos.
func (h *CampaignHandlers) DeleteCampaign(c *gin.Context) {
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

	campaignID := c.Param("id")
	if campaignID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "campaign ID is required"})
		return
	}

	if err := h.service(tenantCtx).Archive(tenantCtx.TenantID, campaignID, session.ProfileID); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	photos := media.NewPhotoProcessor(filepath.Join(config.MediaPath, tenantCtx.TenantID))
	if err := photos.DeleteCampaignPhotos(campaignID); err != nil {
		h.logger.System().Warn("Failed to remove campaign photos",
			"tenantId", tenantCtx.TenantID, "campaignId", campaignID, "error", err.Error())
	}

	c.JSON(http.StatusOK, gin.H{"message": "campaign archived", "campaignId": campaignID})
}
