package middleware

import (
	"net/http"
	"time"

	"catalog-service/internal/models"

	"github.com/gin-gonic/gin"
)

// TenantMiddleware extracts the tenant of the request.
// No default tenant: requests without tenant context are rejected.
// A tenant_id already placed in the context by the gateway wins over headers.
func TenantMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := c.GetString("tenant_id")

		if tenantID == "" {
			tenantID = c.GetHeader("X-Vendor-ID")
		}
		if tenantID == "" {
			tenantID = c.GetHeader("X-Tenant-ID")
		}

		if tenantID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "TENANT_REQUIRED",
					Message: "Tenant ID is required. Include X-Tenant-ID or X-Vendor-ID header.",
				},
				Timestamp: time.Now().UTC().Format(time.RFC3339),
			})
			return
		}

		c.Set("tenant_id", tenantID)
		c.Next()
	}
}

// GetTenantID retrieves the tenant ID from gin context
func GetTenantID(c *gin.Context) string {
	return c.GetString("tenant_id")
}
