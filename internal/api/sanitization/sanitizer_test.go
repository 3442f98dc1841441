package sanitization

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Jane", "Jane"},
		{"trims", "  Jane  ", "Jane"},
		{"collapses whitespace", "Jane\t\n Doe", "Jane Doe"},
		{"strips tags", "<b>Jane</b>", "Jane"},
		{"strips script tags", "<script>alert(1)</script>Jane", "alert(1)Jane"},
		{"strips control chars", "Jane\x00\x1bDoe", "JaneDoe"},
		{"keeps entities untouched", "O'Brien & Sons", "O'Brien & Sons"},
		{"keeps quotes untouched", `say "hi"`, `say "hi"`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeString(tt.input))
		})
	}
}

func TestSanitizeEmail(t *testing.T) {
	assert.Equal(t, "jane@example.com", SanitizeEmail("  Jane@Example.COM "))
	assert.Equal(t, "ab@example.com", SanitizeEmail("a<b@example.com"))
	assert.Equal(t, "o'brien@example.com", SanitizeEmail("O'Brien@example.com"))
}

func TestCoerceBool(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  bool
	}{
		{"bool true", true, true},
		{"bool false", false, false},
		{"string true", "true", true},
		{"string TRUE", "TRUE", true},
		{"string on", "on", true},
		{"string yes", "yes", true},
		{"string 1", "1", true},
		{"string 0", "0", false},
		{"string false", "false", false},
		{"string garbage", "maybe", false},
		{"number 1", float64(1), true},
		{"number 0", float64(0), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CoerceBool(tt.input))
		})
	}
}
