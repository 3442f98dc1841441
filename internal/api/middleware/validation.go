package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"formgate/internal/api/constants"
	"formgate/internal/api/dto/v1/settings"
	"formgate/internal/api/validation"
	"formgate/internal/forms"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ValidationMiddleware handles request validation
type ValidationMiddleware struct {
	validate *validator.Validate
}

// NewValidationMiddleware creates a new validation middleware
func NewValidationMiddleware() *ValidationMiddleware {
	validate := validator.New()
	validation.RegisterValidators(validate)
	return &ValidationMiddleware{
		validate: validate,
	}
}

// ValidateSubmission decodes the submission body into the raw payload map the
// pipeline consumes. Field-level checks are the pipeline's job; this only
// rejects bodies that are not JSON objects at all.
func (m *ValidationMiddleware) ValidateSubmission() gin.HandlerFunc {
	return func(c *gin.Context) {
		bodyBytes, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Error reading request body"})
			c.Abort()
			return
		}

		// Restore body for anything downstream that re-reads it
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		var raw map[string]interface{}
		if err := json.Unmarshal(bodyBytes, &raw); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			c.Abort()
			return
		}

		c.Set(constants.ContextKeySubmission, raw)
		c.Next()
	}
}

// ValidateSettingsUpdate binds and validates a settings write. Only known
// settings keys are accepted, and email/endpoint values must parse.
func (m *ValidationMiddleware) ValidateSettingsUpdate() gin.HandlerFunc {
	knownKeys := make(map[string]bool)
	for _, variant := range forms.All() {
		for _, key := range variant.SettingKeys() {
			knownKeys[key] = true
		}
	}

	return func(c *gin.Context) {
		var req settings.UpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  "Invalid request body",
				"errors": validation.FormatValidationError(err),
			})
			c.Abort()
			return
		}

		for key, value := range req.Values {
			if !knownKeys[key] {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown setting: " + key})
				c.Abort()
				return
			}

			var rule string
			switch {
			case strings.HasSuffix(key, "_email"):
				rule = "omitempty,form_email"
			case strings.HasSuffix(key, "_webhook_endpoint"):
				rule = "omitempty,endpoint_url"
			}
			if rule == "" {
				continue
			}
			if err := m.validate.Var(value, rule); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid value for setting: " + key})
				c.Abort()
				return
			}
		}

		c.Set(constants.ContextKeySettingsUpdate, req)
		c.Next()
	}
}
