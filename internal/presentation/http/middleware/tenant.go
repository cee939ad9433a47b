// Package middleware provides HTTP middleware for the presentation layer.
package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/blindcal/blindcal-go/internal/infrastructure/observability/performance"
	"github.com/blindcal/blindcal-go/internal/infrastructure/tenant"
)

// TenantMiddleware resolves the tenant for the request and attaches the
// full tenant context (config, database, caches).
func TenantMiddleware(tenantManager *tenant.Manager, perfTracker *performance.Tracker) gin.HandlerFunc {
	logger := tenantManager.GetLogger()

	return func(c *gin.Context) {
		start := time.Now()
		marker := perfTracker.StartOperation("middleware_tenant_resolution", "unknown")
		defer marker.Complete()

		// Header and tenantId query fallback are read by the detector;
		// single-tenant deployments resolve to "default" with neither.
		tenantID := c.GetHeader("X-Tenant-ID")
		if tenantID == "" {
			tenantID = c.Query("tenantId")
		}

		marker.AddMetadata("path", c.Request.URL.Path)
		marker.AddMetadata("method", c.Request.Method)
		if tenantID != "" {
			marker.TenantID = tenantID
		}

		tenantCtx, err := tenantManager.GetContext(c)
		if err != nil {
			logger.Tenant().Error("Tenant resolution failed", "error", err.Error(), "tenantId", tenantID)
			marker.SetSuccess(false)
			marker.SetError(err)
			c.JSON(http.StatusNotFound, gin.H{"error": "tenant not found"})
			c.Abort()
			return
		}

		logger.Tenant().Debug("Tenant context resolved",
			"tenantId", tenantCtx.TenantID,
			"duration", time.Since(start),
			"database", tenantCtx.GetDatabaseInfo(),
		)
		marker.SetSuccess(true)

		c.Set("tenant", tenantCtx)
		c.Next()
	}
}

// GetTenantContext retrieves the tenant context from gin context.
func GetTenantContext(c *gin.Context) (*tenant.Context, bool) {
	tenantCtx, exists := c.Get("tenant")
	if !exists {
		return nil, false
	}

	ctx, ok := tenantCtx.(*tenant.Context)
	return ctx, ok
}
