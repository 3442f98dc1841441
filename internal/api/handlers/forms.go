package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"formgate/internal/forms"
	"formgate/internal/repository"

	"github.com/gin-gonic/gin"
)

// FormsHandler renders the embedded demo page for a form variant, with the
// reCAPTCHA site key looked up from the settings store.
type FormsHandler struct {
	settings repository.SettingsRepository
}

// NewFormsHandler creates a new forms handler.
func NewFormsHandler(settings repository.SettingsRepository) *FormsHandler {
	return &FormsHandler{settings: settings}
}

// Show renders the form page for /forms/:namespace.
func (h *FormsHandler) Show(c *gin.Context) {
	variant, err := forms.ByNamespace(c.Param("namespace"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Form not found"})
		return
	}

	siteKey, err := h.settings.Get(c.Request.Context(), variant.SiteKeySetting())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to read settings"})
		return
	}

	c.HTML(http.StatusOK, "form.html", gin.H{
		"Title":      pageTitle(variant.Name),
		"Endpoint":   fmt.Sprintf("/%s/v1/submit/", variant.Namespace),
		"SiteKey":    siteKey,
		"TypeValues": variant.TypeValues,
	})
}

func pageTitle(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
