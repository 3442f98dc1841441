package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"formgate/internal/forms"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// TemplateData is the payload handed to the notification templates.
type TemplateData struct {
	FirstName string
	LastName  string
	Email     string
	Message   string
	Type      string
	Subscribe bool
}

var templates = template.Must(
	template.New("mail").Funcs(template.FuncMap{
		// nl2br renders user text with line breaks preserved, escaping first.
		"nl2br": func(s string) template.HTML {
			escaped := template.HTMLEscapeString(s)
			return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>\n"))
		},
	}).ParseFS(templateFS, "templates/*.tmpl"),
)

// RenderBody renders the notification email body for the given variant and
// submission data. The whitepaper variant selects its template by product type.
func RenderBody(variant forms.Variant, data TemplateData) (string, error) {
	name := variant.Name
	if len(variant.TypeValues) > 0 {
		name = fmt.Sprintf("%s_%s", variant.Name, data.Type)
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name+".html.tmpl", data); err != nil {
		return "", fmt.Errorf("failed to render email template %s: %w", name, err)
	}
	return buf.String(), nil
}
