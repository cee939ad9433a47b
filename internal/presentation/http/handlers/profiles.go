package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blindcal/blindcal-go/internal/application/services"
	"github.com/blindcal/blindcal-go/internal/infrastructure/observability/logging"
	"github.com/blindcal/blindcal-go/internal/infrastructure/observability/performance"
	"github.com/blindcal/blindcal-go/internal/presentation/http/middleware"
)

// ProfileHandlers contains profile HTTP handlers
type ProfileHandlers struct {
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewProfileHandlers creates profile handlers with injected dependencies
func NewProfileHandlers(logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *ProfileHandlers {
	return &ProfileHandlers{logger: logger, perfTracker: perfTracker}
}

// GetMe handles GET /api/v1/profiles/me
func (h *ProfileHandlers) GetMe(c *gin.Context) {
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

	profileService := services.NewProfileService(tenantCtx.ProfileRepo())
	profile, err := profileService.GetByID(tenantCtx.TenantID, session.ProfileID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// PutMe handles PUT /api/v1/profiles/me
func (h *ProfileHandlers) PutMe(c *gin.Context) {
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

	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	profileService := services.NewProfileService(tenantCtx.ProfileRepo())
	profile, err := profileService.Update(tenantCtx.TenantID, session.ProfileID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, profile)
}
