package routes

import "github.com/gin-gonic/gin"

// SetupFormRoutes configures the server-rendered demo form pages.
func SetupFormRoutes(router *gin.Engine, h *Handlers) {
	router.GET("/forms/:namespace", h.Forms.Show)
}
