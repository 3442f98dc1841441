package validation

import (
	"net/url"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// emailRegex is the pattern the embedded client validator uses; keeping the
// server on the same expression means both sides accept the same addresses.
var emailRegex = regexp.MustCompile(`^[\w.+-]+@[\w-]+\.[\w.-]+$`)

// IsValidEmail checks an address against the shared client/server pattern.
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// RegisterValidators registers custom validators
func RegisterValidators(v *validator.Validate) {
	v.RegisterValidation("form_email", validateEmail)
	v.RegisterValidation("endpoint_url", validateURL)
}

// validateEmail checks if the email is valid
func validateEmail(fl validator.FieldLevel) bool {
	return IsValidEmail(fl.Field().String())
}

// validateURL checks if the URL is a well-formed absolute endpoint
func validateURL(fl validator.FieldLevel) bool {
	urlStr := fl.Field().String()
	if urlStr == "" {
		return true // Allow empty URLs
	}
	u, err := url.ParseRequestURI(urlStr)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// ValidationError represents a validation error
type ValidationError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Value string `json:"value"`
}

// FormatValidationError formats validation errors into a user-friendly response
func FormatValidationError(err error) []ValidationError {
	var errors []ValidationError
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			errors = append(errors, ValidationError{
				Field: e.Field(),
				Tag:   e.Tag(),
				Value: e.Param(),
			})
		}
	}
	return errors
}
