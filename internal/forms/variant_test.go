package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByNamespace(t *testing.T) {
	v, err := ByNamespace("contact-form")
	require.NoError(t, err)
	assert.Equal(t, "contact_form", v.Name)

	v, err = ByNamespace("whitepaper")
	require.NoError(t, err)
	assert.Equal(t, RecipientSubmitter, v.Recipient)

	_, err = ByNamespace("newsletter")
	assert.Error(t, err)
}

func TestSettingKeys(t *testing.T) {
	assert.Equal(t, []string{
		"contact_form_recaptcha_site_key",
		"contact_form_recaptcha_secret_key",
		"contact_form_webhook_endpoint",
		"contact_form_email",
	}, Contact.SettingKeys())
}

func TestAllowsType(t *testing.T) {
	tests := []struct {
		variant Variant
		value   string
		want    bool
	}{
		{Whitepaper, "dentapreg", true},
		{Whitepaper, "fibrafill", true},
		{Whitepaper, "brochure", false},
		{Whitepaper, "", false},
		{Contact, "anything", true},
		{Contact, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.variant.Name+"/"+tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.variant.AllowsType(tt.value))
		})
	}
}
