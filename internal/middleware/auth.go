package middleware

import (
	"github.com/gin-gonic/gin"
)

// DevelopmentUserID is used when no caller identity reaches the service.
const DevelopmentUserID = "00000000-0000-0000-0000-000000000001"

// UserContext records the caller. The gateway authenticates the request and
// forwards the subject either in the context or as X-User-ID; outside
// production a missing identity falls back to DevelopmentUserID.
func UserContext(production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			userID = c.GetHeader("X-User-ID")
		}
		if userID == "" && !production {
			userID = DevelopmentUserID
		}

		if userID != "" {
			c.Set("user_id", userID)
		}
		c.Next()
	}
}

// GetUserID retrieves the caller from gin context. Empty when unknown.
func GetUserID(c *gin.Context) string {
	return c.GetString("user_id")
}
