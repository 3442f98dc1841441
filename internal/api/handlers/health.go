package handlers

import (
	"net/http"

	"formgate/internal/api/dto/common"
	"formgate/internal/repository"
	"formgate/internal/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports service liveness and settings-store reachability.
type HealthHandler struct {
	settings repository.SettingsRepository
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(settings repository.SettingsRepository) *HealthHandler {
	return &HealthHandler{settings: settings}
}

// Check pings the settings store. A failure here means every submission would
// fail its secret lookup, so the instance should be pulled from rotation.
func (h *HealthHandler) Check(c *gin.Context) {
	if _, err := h.settings.All(c.Request.Context()); err != nil {
		utils.HandleAPIError(c, err, http.StatusServiceUnavailable, common.ErrCodeInternalServer, "Settings store unreachable")
		return
	}
	utils.HandleMessage(c, "OK")
}
