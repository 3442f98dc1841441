package routes

import "github.com/gin-gonic/gin"

// SetupAdminRoutes configures the token-protected settings API.
func SetupAdminRoutes(router *gin.Engine, h *Handlers, m *Middleware) {
	admin := router.Group("/api/v1")
	admin.Use(m.Admin.RequireAdminToken())
	{
		admin.GET("/settings", h.Settings.List)
		admin.PUT("/settings", m.Validation.ValidateSettingsUpdate(), h.Settings.Update)
	}
}
