package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("LOG_FILE", t.TempDir()+"/formgate.log")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "https://www.google.com/recaptcha/api/siteverify", cfg.RecaptchaVerifyURL)
	assert.InDelta(t, 0.5, cfg.RecaptchaMinScore, 0.0001)
	assert.Equal(t, "5s", cfg.OutboundTimeout.String())
	assert.Equal(t, 587, cfg.SMTPPort)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("LOG_FILE", t.TempDir()+"/formgate.log")
	t.Setenv("PORT", "9090")
	t.Setenv("RECAPTCHA_MIN_SCORE", "0.7")
	t.Setenv("OUTBOUND_TIMEOUT", "2s")
	t.Setenv("ADMIN_TOKEN", "sekrit")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.InDelta(t, 0.7, cfg.RecaptchaMinScore, 0.0001)
	assert.Equal(t, "2s", cfg.OutboundTimeout.String())
	assert.Equal(t, "sekrit", cfg.AdminToken)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("LOG_FILE", t.TempDir()+"/formgate.log")

	t.Setenv("RECAPTCHA_MIN_SCORE", "1.5")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("RECAPTCHA_MIN_SCORE", "0.5")
	t.Setenv("OUTBOUND_TIMEOUT", "-1s")
	_, err = Load()
	assert.Error(t, err)
}
