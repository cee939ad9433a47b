package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/blindcal/blindcal-go/internal/application/container"
)

// NewHealthHandler reports process liveness and tenant counts
func NewHealthHandler(appContainer *container.Container) gin.HandlerFunc {
	startedAt := time.Now().UTC()

	return func(c *gin.Context) {
		activeTenants, err := appContainer.TenantManager.GetActiveTenantCount()
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":        "ok",
			"uptime":        time.Since(startedAt).String(),
			"activeTenants": activeTenants,
		})
	}
}
