package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CtxRequestIDKey is the context key the response envelope reads.
const CtxRequestIDKey = "request_id"

const requestIDHeader = "X-Request-ID"

// RequestID tags every request with an id for log and response correlation.
// An inbound X-Request-ID is kept and echoed; otherwise one is minted.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(CtxRequestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}
