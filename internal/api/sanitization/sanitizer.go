package sanitization

import (
	"regexp"
	"strings"
)

var (
	tagPattern   = regexp.MustCompile(`<[^>]*>`)
	controlChars = regexp.MustCompile("[\x00-\x08\x0b\x0c\x0e-\x1f\x7f]")
	multiSpace   = regexp.MustCompile(`\s+`)

	// Characters sanitize_email considered legal in an address.
	invalidEmailChars = regexp.MustCompile("[^a-z0-9.!#$%&'*+/=?^_`{|}~@\\[\\]-]")
)

// SanitizeString scrubs free-text input the way sanitize_text_field did for
// the plugins: tags and control characters stripped, whitespace collapsed,
// ends trimmed. It does not entity-encode; the notification templates escape
// on output, so every field is escaped exactly once.
func SanitizeString(input string) string {
	safe := tagPattern.ReplaceAllString(input, "")
	safe = controlChars.ReplaceAllString(safe, "")
	safe = multiSpace.ReplaceAllString(safe, " ")
	return strings.TrimSpace(safe)
}

// SanitizeEmail coerces an email address to canonical form: lowercase,
// trimmed, characters illegal in an address removed.
func SanitizeEmail(input string) string {
	email := strings.ToLower(input)
	email = strings.TrimSpace(email)
	return invalidEmailChars.ReplaceAllString(email, "")
}

// CoerceBool converts loosely typed client input to a boolean the way PHP's
// FILTER_VALIDATE_BOOLEAN did: true/1/on/yes in any case are true, everything
// else is false.
func CoerceBool(input interface{}) bool {
	switch v := input.(type) {
	case bool:
		return v
	case float64:
		return v == 1
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1", "on", "yes":
			return true
		}
	}
	return false
}
