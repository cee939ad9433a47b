package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blindcal/blindcal-go/internal/application/services"
	"github.com/blindcal/blindcal-go/internal/infrastructure/observability/logging"
	"github.com/blindcal/blindcal-go/internal/infrastructure/observability/performance"
	"github.com/blindcal/blindcal-go/internal/infrastructure/tenant"
	"github.com/blindcal/blindcal-go/internal/presentation/http/middleware"
)

const notFoundPage = `<!DOCTYPE html>
<html><head><title>Not Found</title></head>
<body><h1>This page is taking a break</h1>
<p>The campaign you are looking for is not published or no longer exists.</p>
</body></html>`

// LandingHandlers serves rendered campaign landing pages
type LandingHandlers struct {
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewLandingHandlers creates landing page handlers with injected dependencies
func NewLandingHandlers(logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *LandingHandlers {
	return &LandingHandlers{logger: logger, perfTracker: perfTracker}
}

func (h *LandingHandlers) service(tenantCtx *tenant.Context) *services.LandingService {
	return services.NewLandingService(
		tenantCtx.CampaignRepo(),
		tenantCtx.CandidateRepo(),
		tenantCtx.ProfileRepo(),
		h.perfTracker,
		h.logger,
	)
}

// GetLandingPage handles GET /c/:slug - the public campaign page
func (h *LandingHandlers) GetLandingPage(c *gin.Context) {
	tenantCtx, exists := middleware.GetTenantContext(c)
	if !exists {
		c.Data(http.StatusInternalServerError, "text/html; charset=utf-8", []byte(notFoundPage))
		return
	}

	slug := c.Param("slug")
	if slug == "" {
		c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte(notFoundPage))
		return
	}

	page, err := h.service(tenantCtx).RenderBySlug(tenantCtx.TenantID, slug)
	if err != nil {
		h.logger.Render().Error("Landing page render failed",
			"tenantId", tenantCtx.TenantID, "slug", slug, "error", err.Error())
		c.Data(http.StatusInternalServerError, "text/html; charset=utf-8", []byte(notFoundPage))
		return
	}
	if page == nil {
		c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte(notFoundPage))
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page.HTML))
}

// PostPreview handles POST /api/v1/campaigns/:id/preview - render a draft
// template against the campaign without saving it.
func (h *LandingHandlers) PostPreview(c *gin.Context) {
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

	var req struct {
		Template string `json:"template" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	html, err := h.service(tenantCtx).Preview(tenantCtx.TenantID, campaignID, req.Template)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"html": html})
}
