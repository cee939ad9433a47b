package handlers

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/blindcal/blindcal-go/internal/application/services"
	"github.com/blindcal/blindcal-go/internal/infrastructure/email"
	"github.com/blindcal/blindcal-go/internal/infrastructure/media"
	"github.com/blindcal/blindcal-go/internal/infrastructure/messaging"
	"github.com/blindcal/blindcal-go/internal/infrastructure/observability/logging"
	"github.com/blindcal/blindcal-go/internal/infrastructure/observability/performance"
	"github.com/blindcal/blindcal-go/internal/infrastructure/tenant"
	"github.com/blindcal/blindcal-go/internal/presentation/http/middleware"
	"github.com/blindcal/blindcal-go/pkg/config"
)

// CandidateHandlers contains candidate pipeline HTTP handlers
type CandidateHandlers struct {
	emailService email.Service
	broadcaster  *messaging.PipelineBroadcaster
	logger       *logging.ChanneledLogger
	perfTracker  *performance.Tracker
}

// NewCandidateHandlers creates candidate handlers with injected dependencies
func NewCandidateHandlers(
	emailService email.Service,
	broadcaster *messaging.PipelineBroadcaster,
	logger *logging.ChanneledLogger,
	perfTracker *performance.Tracker,
) *CandidateHandlers {
	return &CandidateHandlers{
		emailService: emailService,
		broadcaster:  broadcaster,
		logger:       logger,
		perfTracker:  perfTracker,
	}
}

func (h *CandidateHandlers) service(tenantCtx *tenant.Context) *services.CandidateService {
	return services.NewCandidateService(
		tenantCtx.CandidateRepo(),
		tenantCtx.CampaignRepo(),
		tenantCtx.DelegationRepo(),
		tenantCtx.BookingRepo(),
		h.emailService,
		h.broadcaster,
		h.logger,
	)
}

func (h *CandidateHandlers) photos(tenantCtx *tenant.Context) *media.PhotoProcessor {
	return media.NewPhotoProcessor(filepath.Join(config.MediaPath, tenantCtx.TenantID))
}

// PostApply handles POST /c/:slug/apply - public application to a published campaign
func (h *CandidateHandlers) PostApply(c *gin.Context) {
	tenantCtx, exists := middleware.GetTenantContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return
	}

	marker := h.perfTracker.StartOperation("post_candidate_apply", tenantCtx.TenantID)
	defer marker.Complete()

	slug := c.Param("slug")
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "campaign slug is required"})
		return
	}

	var req services.ApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	candidate, err := h.service(tenantCtx).Apply(tenantCtx.TenantID, slug, &req, h.photos(tenantCtx))
	if err != nil {
		marker.SetError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusCreated, gin.H{
		"message":     "application received",
		"candidateId": candidate.ID,
		"stage":       candidate.CurrentStage,
	})
}

// GetCandidates handles GET /api/v1/campaigns/:id/candidates
func (h *CandidateHandlers) GetCandidates(c *gin.Context) {
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

	candidates, err := h.service(tenantCtx).ListByCampaign(tenantCtx.TenantID, campaignID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"candidates": candidates, "count": len(candidates)})
}

// GetStats handles GET /api/v1/campaigns/:id/stats
func (h *CandidateHandlers) GetStats(c *gin.Context) {
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

	stats, err := h.service(tenantCtx).Stats(tenantCtx.TenantID, campaignID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetCandidate handles GET /api/v1/candidates/:id
func (h *CandidateHandlers) GetCandidate(c *gin.Context) {
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

	candidate, err := h.service(tenantCtx).GetByID(tenantCtx.TenantID, candidateID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if candidate == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "candidate not found"})
		return
	}

	c.JSON(http.StatusOK, candidate)
}

// PutStage handles PUT /api/v1/candidates/:id/stage
func (h *CandidateHandlers) PutStage(c *gin.Context) {
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

	marker := h.perfTracker.StartOperation("put_candidate_stage", tenantCtx.TenantID)
	defer marker.Complete()

	candidateID := c.Param("id")
	if candidateID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "candidate ID is required"})
		return
	}

	var req services.StageChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	candidate, err := h.service(tenantCtx).ChangeStage(tenantCtx.TenantID, candidateID, session.ProfileID, session.Role, &req)
	if err != nil {
		marker.SetError(err)
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, candidate)
}

// PutNotes handles PUT /api/v1/candidates/:id/notes
func (h *CandidateHandlers) PutNotes(c *gin.Context) {
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

	candidateID := c.Param("id")
	if candidateID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "candidate ID is required"})
		return
	}

	var req services.NotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	candidate, err := h.service(tenantCtx).UpdateNotes(tenantCtx.TenantID, candidateID, session.ProfileID, session.Role, &req)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, candidate)
}

// DeleteCandidate handles DELETE /api/v1/candidates/:id
func (h *CandidateHandlers) DeleteCandidate(c *gin.Context) {
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

	candidateID := c.Param("id")
	if candidateID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "candidate ID is required"})
		return
	}

	err := h.service(tenantCtx).Delete(tenantCtx.TenantID, candidateID, session.ProfileID, session.Role, h.photos(tenantCtx))
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "candidate deleted", "candidateId": candidateID})
}

// GetEvents handles GET /api/v1/candidates/:id/events - the audit trail
func (h *CandidateHandlers) GetEvents(c *gin.Context) {
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

	events, err := h.service(tenantCtx).GetEvents(tenantCtx.TenantID, candidateID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events, "count": len(events)})
}
