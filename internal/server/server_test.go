package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"formgate/internal/config"
	"formgate/internal/mail"
	"formgate/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newVerifyServer fakes the reCAPTCHA siteverify endpoint.
func newVerifyServer(t *testing.T, success bool, score float64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.NotEmpty(t, r.Form.Get("secret"))
		assert.NotEmpty(t, r.Form.Get("response"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": success,
			"score":   score,
		})
	}))
}

type fixture struct {
	router   *gin.Engine
	mailer   *mail.MockMailer
	settings *repository.MemorySettingsRepository
}

func newFixture(t *testing.T, verifyURL, adminToken string, seed map[string]string) *fixture {
	t.Helper()

	cfg := &config.Config{
		Environment:        "test",
		Port:               "0",
		AdminToken:         adminToken,
		OutboundTimeout:    2 * time.Second,
		RecaptchaVerifyURL: verifyURL,
		RecaptchaMinScore:  0.5,
	}

	settings := repository.NewMemorySettings(seed)
	mailer := mail.NewMockMailer()

	srv := NewServer(cfg, settings, mailer)
	srv.Setup()

	return &fixture{router: srv.Router(), mailer: mailer, settings: settings}
}

func (f *fixture) post(t *testing.T, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	encoded, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(encoded))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func contactSeed(webhookURL string) map[string]string {
	return map[string]string{
		"contact_form_recaptcha_site_key":   "site-key",
		"contact_form_recaptcha_secret_key": "secret-key",
		"contact_form_email":                "owner@example.com",
		"contact_form_webhook_endpoint":     webhookURL,
	}
}

func contactPayload() map[string]interface{} {
	return map[string]interface{}{
		"first_name":      "Ada",
		"last_name":       "Lovelace",
		"email":           "ada@example.com",
		"message":         "Hello there",
		"recaptchaToken": "tok-123",
	}
}

func TestContactSubmitSuccess(t *testing.T) {
	verify := newVerifyServer(t, true, 0.9)
	defer verify.Close()

	var relayed []byte
	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := new(bytes.Buffer)
		buf.ReadFrom(r.Body)
		relayed = buf.Bytes()
		w.WriteHeader(http.StatusOK)
	}))
	defer webhook.Close()

	f := newFixture(t, verify.URL, "", contactSeed(webhook.URL))

	w := f.post(t, "/contact-form/v1/submit/", contactPayload())

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "The contact_form was sent to your email!", body["message"])

	sent := f.mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "owner@example.com", sent[0].To)
	assert.Contains(t, string(relayed), "ada@example.com")
}

func TestContactSubmitMissingField(t *testing.T) {
	verify := newVerifyServer(t, true, 0.9)
	defer verify.Close()

	f := newFixture(t, verify.URL, "", contactSeed(""))

	payload := contactPayload()
	delete(payload, "message")
	w := f.post(t, "/contact-form/v1/submit/", payload)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Data    struct {
			Status int `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "missing_fields", body.Code)
	assert.Equal(t, "All fields are required.", body.Message)
	assert.Equal(t, http.StatusBadRequest, body.Data.Status)
	assert.Empty(t, f.mailer.Sent())
}

func TestContactSubmitBotRejected(t *testing.T) {
	verify := newVerifyServer(t, false, 0)
	defer verify.Close()

	f := newFixture(t, verify.URL, "", contactSeed(""))

	w := f.post(t, "/contact-form/v1/submit/", contactPayload())

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "recaptcha_invalid")
	assert.Contains(t, w.Body.String(), "You might be a bot.")
	assert.Empty(t, f.mailer.Sent())
}

func TestContactSubmitLowScore(t *testing.T) {
	verify := newVerifyServer(t, true, 0.2)
	defer verify.Close()

	f := newFixture(t, verify.URL, "", contactSeed(""))

	w := f.post(t, "/contact-form/v1/submit/", contactPayload())

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "recaptcha_invalid")
	assert.Empty(t, f.mailer.Sent())
}

func TestContactSubmitInvalidBody(t *testing.T) {
	verify := newVerifyServer(t, true, 0.9)
	defer verify.Close()

	f := newFixture(t, verify.URL, "", contactSeed(""))

	req := httptest.NewRequest(http.MethodPost, "/contact-form/v1/submit/", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request body")
}

func TestWhitepaperSubmitMailsSubmitter(t *testing.T) {
	verify := newVerifyServer(t, true, 0.9)
	defer verify.Close()

	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer webhook.Close()

	f := newFixture(t, verify.URL, "", map[string]string{
		"whitepaper_recaptcha_secret_key": "secret-key",
		"whitepaper_webhook_endpoint":     webhook.URL,
	})

	w := f.post(t, "/whitepaper/v1/submit/", map[string]interface{}{
		"first_name":      "Grace",
		"last_name":       "Hopper",
		"email":           "grace@example.com",
		"type":            "dentapreg",
		"subscribe":       true,
		"recaptchaToken": "tok-456",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "The whitepaper was sent to your email!")

	sent := f.mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "grace@example.com", sent[0].To)
	assert.Equal(t, "Your Whitepaper Is Ready to Download!", sent[0].Subject)
}

func TestHealthEndpoint(t *testing.T) {
	verify := newVerifyServer(t, true, 0.9)
	defer verify.Close()

	f := newFixture(t, verify.URL, "", nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
}

func TestFormPage(t *testing.T) {
	verify := newVerifyServer(t, true, 0.9)
	defer verify.Close()

	f := newFixture(t, verify.URL, "", contactSeed(""))

	req := httptest.NewRequest(http.MethodGet, "/forms/contact-form", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `data-sitekey="site-key"`)
	assert.Contains(t, w.Body.String(), "/contact-form/v1/submit/")

	req = httptest.NewRequest(http.MethodGet, "/forms/nope", nil)
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminSettingsDisabledWithoutToken(t *testing.T) {
	verify := newVerifyServer(t, true, 0.9)
	defer verify.Close()

	f := newFixture(t, verify.URL, "", nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/settings", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminSettingsRoundTrip(t *testing.T) {
	verify := newVerifyServer(t, true, 0.9)
	defer verify.Close()

	f := newFixture(t, verify.URL, "admin-token", contactSeed(""))

	// Wrong token rejected.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/settings", nil)
	req.Header.Set("X-Admin-Token", "wrong")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Update a value.
	update, err := json.Marshal(map[string]interface{}{
		"values": map[string]string{"contact_form_email": "new-owner@example.com"},
	})
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodPut, "/api/v1/settings", bytes.NewReader(update))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Admin-Token", "admin-token")
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Read back: new value visible, secret masked.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/settings", nil)
	req.Header.Set("X-Admin-Token", "admin-token")
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "new-owner@example.com")
	assert.Contains(t, w.Body.String(), "********")
	assert.NotContains(t, w.Body.String(), "secret-key")
}

func TestAdminSettingsRejectsUnknownKey(t *testing.T) {
	verify := newVerifyServer(t, true, 0.9)
	defer verify.Close()

	f := newFixture(t, verify.URL, "admin-token", nil)

	update, err := json.Marshal(map[string]interface{}{
		"values": map[string]string{"not_a_setting": "x"},
	})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/settings", bytes.NewReader(update))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Admin-Token", "admin-token")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
