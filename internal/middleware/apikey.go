package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"github.com/classreg/backend/pkg/response"
)

// HeaderAPIKey is the header clients authenticate with.
const HeaderAPIKey = "X-API-Key"

// APIKey returns a middleware that checks the X-API-Key header against the
// configured keys. Comparison is constant-time. An empty key list disables
// the check (local development).
func APIKey(keys []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(keys) == 0 {
			c.Next()
			return
		}
		provided := c.GetHeader(HeaderAPIKey)
		if provided == "" {
			response.Unauthorized(c, "API key is required")
			c.Abort()
			return
		}
		for _, k := range keys {
			if subtle.ConstantTimeCompare([]byte(provided), []byte(k)) == 1 {
				c.Next()
				return
			}
		}
		response.Unauthorized(c, "Invalid API key")
		c.Abort()
	}
}
