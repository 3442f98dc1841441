package routes

import (
	"formgate/internal/logging"

	"github.com/gin-gonic/gin"
)

// Setup configures all route groups. The submit endpoints are registered with
// their historical trailing slash; Gin's trailing-slash redirect covers the
// bare spelling.
func Setup(router *gin.Engine, h *Handlers, m *Middleware) {
	logger := logging.GetGlobalLogger()

	SetupHealthRoutes(router, h)
	SetupSubmissionRoutes(router, h, m)
	SetupFormRoutes(router, h)
	SetupAdminRoutes(router, h, m)

	logger.Info("All routes have been set up successfully")
}
