package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blindcal/blindcal-go/internal/application/services"
	"github.com/blindcal/blindcal-go/internal/infrastructure/email"
	"github.com/blindcal/blindcal-go/internal/infrastructure/observability/logging"
	"github.com/blindcal/blindcal-go/internal/infrastructure/observability/performance"
	"github.com/blindcal/blindcal-go/internal/infrastructure/tenant"
	"github.com/blindcal/blindcal-go/internal/presentation/http/middleware"
)

// DelegationHandlers contains wingman delegation HTTP handlers
type DelegationHandlers struct {
	emailService email.Service
	logger       *logging.ChanneledLogger
	perfTracker  *performance.Tracker
}

// NewDelegationHandlers creates delegation handlers with injected dependencies
func NewDelegationHandlers(emailService email.Service, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *DelegationHandlers {
	return &DelegationHandlers{
		emailService: emailService,
		logger:       logger,
		perfTracker:  perfTracker,
	}
}

func (h *DelegationHandlers) service(tenantCtx *tenant.Context) *services.DelegationService {
	return services.NewDelegationService(
		tenantCtx.DelegationRepo(),
		tenantCtx.ProfileRepo(),
		h.emailService,
		h.logger,
	)
}

// PostInvite handles POST /api/v1/delegations - a single invites a wingman
func (h *DelegationHandlers) PostInvite(c *gin.Context) {
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

	marker := h.perfTracker.StartOperation("post_delegation_invite", tenantCtx.TenantID)
	defer marker.Complete()

	var req services.InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	delegation, err := h.service(tenantCtx).Invite(tenantCtx.TenantID, session.ProfileID, &req)
	if err != nil {
		marker.SetError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusCreated, delegation)
}

// PostAccept handles POST /api/v1/delegations/accept - a wingman redeems an invite token
func (h *DelegationHandlers) PostAccept(c *gin.Context) {
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

	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	delegation, err := h.service(tenantCtx).Accept(tenantCtx.TenantID, req.Token, session.ProfileID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, delegation)
}

// DeleteDelegation handles DELETE /api/v1/delegations/:id - the single revokes
func (h *DelegationHandlers) DeleteDelegation(c *gin.Context) {
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

	delegationID := c.Param("id")
	if delegationID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "delegation ID is required"})
		return
	}

	if err := h.service(tenantCtx).Revoke(tenantCtx.TenantID, delegationID, session.ProfileID); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "delegation revoked", "delegationId": delegationID})
}

// GetDelegations handles GET /api/v1/delegations - both sides list their delegations
func (h *DelegationHandlers) GetDelegations(c *gin.Context) {
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

	delegations, err := h.service(tenantCtx).ListForProfile(tenantCtx.TenantID, session.ProfileID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"delegations": delegations, "count": len(delegations)})
}
