// Package handlers provides HTTP request handlers for the presentation layer.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/blindcal/blindcal-go/internal/application/services"
	"github.com/blindcal/blindcal-go/internal/infrastructure/observability/logging"
	"github.com/blindcal/blindcal-go/internal/infrastructure/observability/performance"
	"github.com/blindcal/blindcal-go/internal/presentation/http/middleware"
)

// AuthHandlers contains registration and login HTTP handlers
type AuthHandlers struct {
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewAuthHandlers creates auth handlers with injected dependencies
func NewAuthHandlers(logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *AuthHandlers {
	return &AuthHandlers{logger: logger, perfTracker: perfTracker}
}

// PostRegister handles POST /api/v1/auth/register
func (h *AuthHandlers) PostRegister(c *gin.Context) {
	tenantCtx, exists := middleware.GetTenantContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return
	}

	marker := h.perfTracker.StartOperation("post_register_request", tenantCtx.TenantID)
	defer marker.Complete()

	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	profileService := services.NewProfileService(tenantCtx.ProfileRepo())
	profile, err := profileService.Register(tenantCtx.TenantID, &req)
	if err != nil {
		marker.SetError(err)
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusCreated, gin.H{"profile": profile})
}

// PostLogin handles POST /api/v1/auth/login
func (h *AuthHandlers) PostLogin(c *gin.Context) {
	tenantCtx, exists := middleware.GetTenantContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return
	}

	start := time.Now()
	marker := h.perfTracker.StartOperation("post_login_request", tenantCtx.TenantID)
	defer marker.Complete()

	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	authService := services.NewAuthService(tenantCtx.ProfileRepo(), h.logger)
	result, err := authService.Login(tenantCtx.TenantID, tenantCtx.Config.JWTSecret, &req)
	if err != nil {
		marker.SetSuccess(false)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	h.logger.Auth().Info("Login succeeded", "tenantId", tenantCtx.TenantID,
		"profileId", result.Profile.ID, "duration", time.Since(start))
	marker.SetSuccess(true)
	c.JSON(http.StatusOK, result)
}
