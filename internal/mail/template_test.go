package mail

import (
	"strings"
	"testing"

	"formgate/internal/api/sanitization"
	"formgate/internal/forms"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderContactBody(t *testing.T) {
	body, err := RenderBody(forms.Contact, TemplateData{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Message:   "First line\nSecond line",
	})
	require.NoError(t, err)

	assert.Contains(t, body, "New Contact Form Submission")
	assert.Contains(t, body, "Jane")
	assert.Contains(t, body, "jane@example.com")
	assert.Contains(t, body, "First line<br>")
}

func TestRenderContactBodyEscapesHTML(t *testing.T) {
	body, err := RenderBody(forms.Contact, TemplateData{
		FirstName: "<script>alert(1)</script>",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Message:   "<b>bold</b>",
	})
	require.NoError(t, err)

	assert.NotContains(t, body, "<script>")
	assert.NotContains(t, body, "<b>bold</b>")
}

// Sanitized fields must come out of the templates escaped exactly once, the
// way esc_html rendered them for the plugins. A pre-encoding sanitizer would
// turn "O'Brien & Sons" into literal "&amp;#39;" text in the email.
func TestRenderBodyEscapesSanitizedInputOnce(t *testing.T) {
	body, err := RenderBody(forms.Contact, TemplateData{
		FirstName: sanitization.SanitizeString("O'Brien & Sons"),
		LastName:  sanitization.SanitizeString("Doe"),
		Email:     sanitization.SanitizeEmail("obrien@example.com"),
		Message:   sanitization.SanitizeString(`Tom & Jerry say "hi"`),
	})
	require.NoError(t, err)

	assert.Contains(t, body, "O&#39;Brien &amp; Sons")
	assert.Contains(t, body, "Tom &amp; Jerry say &#34;hi&#34;")
	assert.NotContains(t, body, "&amp;amp;")
	assert.NotContains(t, body, "&amp;#39;")
	assert.NotContains(t, body, "&amp;#34;")
}

func TestRenderWhitepaperBodyPicksTemplateByType(t *testing.T) {
	for _, typ := range []string{"dentapreg", "fibrafill"} {
		body, err := RenderBody(forms.Whitepaper, TemplateData{
			FirstName: "Jane",
			Email:     "jane@example.com",
			Type:      typ,
		})
		require.NoError(t, err)
		assert.Contains(t, strings.ToLower(body), typ)
	}
}

func TestRenderWhitepaperSubscribeNote(t *testing.T) {
	withSub, err := RenderBody(forms.Whitepaper, TemplateData{FirstName: "J", Email: "j@e.co", Type: "dentapreg", Subscribe: true})
	require.NoError(t, err)
	withoutSub, err2 := RenderBody(forms.Whitepaper, TemplateData{FirstName: "J", Email: "j@e.co", Type: "dentapreg"})
	require.NoError(t, err2)

	assert.Contains(t, withSub, "newsletter")
	assert.NotContains(t, withoutSub, "newsletter")
}

func TestRenderUnknownTypeFails(t *testing.T) {
	_, err := RenderBody(forms.Whitepaper, TemplateData{Type: "brochure"})
	assert.Error(t, err)
}
