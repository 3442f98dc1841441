package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"a@b.co", true},
		{"jane@example.com", true},
		{"jane.doe+tag@example.co.uk", true},
		{"jane_doe@sub-domain.example.com", true},
		{"not-an-email", false},
		{"@example.com", false},
		{"jane@", false},
		{"jane@example", false},
		{"jane doe@example.com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := IsValidEmail(tt.email); got != tt.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestRegisteredValidators(t *testing.T) {
	v := validator.New()
	RegisterValidators(v)

	type payload struct {
		Email   string `validate:"omitempty,form_email"`
		Webhook string `validate:"omitempty,endpoint_url"`
	}

	require.NoError(t, v.Struct(payload{Email: "a@b.co", Webhook: "https://hooks.example.com/x"}))
	require.NoError(t, v.Struct(payload{}), "empty values pass omitempty")

	err := v.Struct(payload{Email: "not-an-email"})
	require.Error(t, err)
	fields := FormatValidationError(err)
	require.Len(t, fields, 1)
	assert.Equal(t, "Email", fields[0].Field)
	assert.Equal(t, "form_email", fields[0].Tag)

	assert.Error(t, v.Struct(payload{Webhook: "not a url"}))
}
