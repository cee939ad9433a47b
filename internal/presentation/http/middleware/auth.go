package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/blindcal/blindcal-go/internal/domain/entities/dating"
	"github.com/blindcal/blindcal-go/internal/infrastructure/security"
)

// AuthMiddleware validates the session JWT against the tenant's secret and
// attaches the session claims. Must run after TenantMiddleware.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantCtx, exists := GetTenantContext(c)
		if !exists {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
			c.Abort()
			return
		}

		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			// Browser WebSocket clients pass the token as a query param.
			token = c.Query("token")
		}
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}

		claims, err := security.ValidateJWT(token, tenantCtx.Config.JWTSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			c.Abort()
			return
		}

		session, err := security.SessionFromClaims(claims)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid session token"})
			c.Abort()
			return
		}
		if session.TenantID != "" && session.TenantID != tenantCtx.TenantID {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "session does not match tenant"})
			c.Abort()
			return
		}

		c.Set("session", session)
		c.Next()
	}
}

// RequireRole restricts a route to one role. Must run after AuthMiddleware.
func RequireRole(role dating.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, exists := GetSession(c)
		if !exists || session.Role != role {
			c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetSession retrieves the validated session claims from gin context.
func GetSession(c *gin.Context) (*security.SessionClaims, bool) {
	value, exists := c.Get("session")
	if !exists {
		return nil, false
	}
	session, ok := value.(*security.SessionClaims)
	return session, ok
}
