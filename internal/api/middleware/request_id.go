package middleware

import (
	"formgate/internal/api/constants"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestID tags every submission with an identifier so the pipeline's log
// lines can be correlated with the response the client saw. A caller-supplied
// ID (from an upstream proxy) is kept; otherwise one is minted.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(constants.ContextKeyRequestID, id)
		c.Header(requestIDHeader, id)

		c.Next()
	}
}

// RequestIDFromContext returns the identifier RequestID stored, or "" when
// the middleware is not mounted.
func RequestIDFromContext(c *gin.Context) string {
	return c.GetString(constants.ContextKeyRequestID)
}
