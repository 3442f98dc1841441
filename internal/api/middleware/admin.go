package middleware

import (
	"crypto/subtle"
	"net/http"

	"formgate/internal/api/dto/common"
	"formgate/internal/logging"
	"formgate/internal/utils"

	"github.com/gin-gonic/gin"
)

// AdminMiddleware guards the settings surface with a shared deployment token.
// The submission endpoints stay public; only the operator API sits behind it.
type AdminMiddleware struct {
	token string
}

// NewAdminMiddleware creates a new admin middleware
func NewAdminMiddleware(token string) *AdminMiddleware {
	return &AdminMiddleware{token: token}
}

// RequireAdminToken checks the X-Admin-Token header against the configured
// token. With no token configured the whole admin surface is disabled.
func (m *AdminMiddleware) RequireAdminToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := logging.GetGlobalLogger()

		if m.token == "" {
			utils.HandleAPIError(c, nil, http.StatusForbidden, common.ErrCodeForbidden, "Admin API is not enabled")
			c.Abort()
			return
		}

		provided := c.GetHeader("X-Admin-Token")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(m.token)) != 1 {
			logger.Warn("Rejected admin request from %s", utils.GetRealIP(c))
			utils.HandleAPIError(c, nil, http.StatusUnauthorized, common.ErrCodeUnauthorized, "Invalid admin token")
			c.Abort()
			return
		}

		c.Next()
	}
}
