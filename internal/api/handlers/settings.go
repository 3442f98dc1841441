package handlers

import (
	"net/http"
	"strings"

	"formgate/internal/api/constants"
	"formgate/internal/api/dto/common"
	settingsdto "formgate/internal/api/dto/v1/settings"
	"formgate/internal/forms"
	"formgate/internal/repository"
	"formgate/internal/utils"

	"github.com/gin-gonic/gin"
)

const secretMask = "********"

// SettingsHandler exposes the settings store over the admin API. The store
// replaces the options pages both plugins registered in wp-admin.
type SettingsHandler struct {
	settings repository.SettingsRepository
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(settings repository.SettingsRepository) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// List returns every known settings key with its current value. Keys that were
// never written come back as empty strings; secrets are masked.
func (h *SettingsHandler) List(c *gin.Context) {
	stored, err := h.settings.All(c.Request.Context())
	if err != nil {
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed to read settings")
		return
	}

	values := make(map[string]string)
	for _, variant := range forms.All() {
		for _, key := range variant.SettingKeys() {
			values[key] = stored[key]
		}
	}
	for key, value := range values {
		if strings.HasSuffix(key, "_recaptcha_secret_key") && value != "" {
			values[key] = secretMask
		}
	}

	utils.HandleSuccess(c, settingsdto.Response{Values: values})
}

// Update writes the submitted key/value pairs. The validation middleware has
// already rejected unknown keys and malformed emails or endpoint URLs.
func (h *SettingsHandler) Update(c *gin.Context) {
	req, exists := c.Get(constants.ContextKeySettingsUpdate)
	if !exists {
		utils.HandleAPIError(c, nil, http.StatusInternalServerError, common.ErrCodeInternalServer, "Settings data not found in context")
		return
	}

	update, ok := req.(settingsdto.UpdateRequest)
	if !ok {
		utils.HandleAPIError(c, nil, http.StatusInternalServerError, common.ErrCodeInternalServer, "Settings data not found in context")
		return
	}

	for key, value := range update.Values {
		if err := h.settings.Set(c.Request.Context(), key, value); err != nil {
			utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed to save settings")
			return
		}
	}

	utils.HandleMessage(c, "Settings saved.")
}
