package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextRequestID is the key for the request id in gin context.
const ContextRequestID = "request_id"

// HeaderRequestID is the response header carrying the request id.
const HeaderRequestID = "X-Request-ID"

// RequestID assigns a uuid to every request and echoes it in the response.
// An inbound X-Request-ID is honored so callers can correlate.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(ContextRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}
