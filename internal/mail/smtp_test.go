package mail

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSMTPMailerValidation(t *testing.T) {
	_, err := NewSMTPMailer(SMTPConfig{Port: 587, From: "a@b.co"})
	assert.Error(t, err, "missing host")

	_, err = NewSMTPMailer(SMTPConfig{Host: "smtp.example.com", Port: 0, From: "a@b.co"})
	assert.Error(t, err, "bad port")

	_, err = NewSMTPMailer(SMTPConfig{Host: "smtp.example.com", Port: 587})
	assert.Error(t, err, "missing from")

	m, err := NewSMTPMailer(SMTPConfig{Host: "smtp.example.com", Port: 587, From: "a@b.co"})
	require.NoError(t, err)
	assert.NotNil(t, m)
}

func TestBuildMIMEMessage(t *testing.T) {
	raw := string(BuildMIMEMessage("no-reply@example.com", &Message{
		To:       "jane@example.com",
		Subject:  "New contact form submission",
		HTMLBody: "<p>line one\nline two</p>",
	}))

	assert.Contains(t, raw, "From: no-reply@example.com\r\n")
	assert.Contains(t, raw, "To: jane@example.com\r\n")
	assert.Contains(t, raw, "Subject: New contact form submission\r\n")
	assert.Contains(t, raw, "Content-Type: text/html; charset=UTF-8\r\n")

	// Body is CRLF-normalized and separated from headers by a blank line.
	parts := strings.SplitN(raw, "\r\n\r\n", 2)
	require.Len(t, parts, 2)
	assert.Equal(t, "<p>line one\r\nline two</p>", parts[1])
}

func TestBuildMIMEMessageStripsHeaderInjection(t *testing.T) {
	raw := string(BuildMIMEMessage("no-reply@example.com", &Message{
		To:      "jane@example.com",
		Subject: "hello\r\nBcc: victim@example.com",
	}))

	assert.NotContains(t, raw, "Bcc:")
}
