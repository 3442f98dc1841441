package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"formgate/internal/forms"
	"formgate/internal/mail"
	"formgate/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock RecaptchaVerifier
type mockVerifier struct {
	verifyFunc func(ctx context.Context, token, secret string) VerificationResult
	calls      int
}

func (m *mockVerifier) Verify(ctx context.Context, token, secret string) VerificationResult {
	m.calls++
	if m.verifyFunc != nil {
		return m.verifyFunc(ctx, token, secret)
	}
	return VerificationResult{Status: VerificationAccepted, Score: 0.9}
}

// Mock WebhookRelay
type mockRelay struct {
	mu        sync.Mutex
	relayFunc func(ctx context.Context, url string, payload []byte) error
	calls     []string
}

func (m *mockRelay) Relay(ctx context.Context, url string, payload []byte) error {
	m.mu.Lock()
	m.calls = append(m.calls, url)
	m.mu.Unlock()
	if m.relayFunc != nil {
		return m.relayFunc(ctx, url, payload)
	}
	return nil
}

type fixture struct {
	pipeline *Pipeline
	settings *repository.MemorySettingsRepository
	verifier *mockVerifier
	mailer   *mail.MockMailer
	relay    *mockRelay
}

func newFixture(t *testing.T, variant forms.Variant, settings map[string]string) *fixture {
	t.Helper()

	f := &fixture{
		settings: repository.NewMemorySettings(settings),
		verifier: &mockVerifier{},
		mailer:   mail.NewMockMailer(),
		relay:    &mockRelay{},
	}
	f.pipeline = NewPipeline(variant, f.settings, f.verifier, f.mailer, f.relay)
	return f
}

func contactPayload() map[string]interface{} {
	return map[string]interface{}{
		"first_name":     "Jane",
		"last_name":      "Doe",
		"email":          "jane@example.com",
		"message":        "Hi",
		"recaptchaToken": "tok",
	}
}

func whitepaperPayload() map[string]interface{} {
	return map[string]interface{}{
		"first_name":     "Jane",
		"last_name":      "Doe",
		"email":          "jane@example.com",
		"type":           "dentapreg",
		"subscribe":      true,
		"recaptchaToken": "tok",
	}
}

func contactSettings() map[string]string {
	return map[string]string{
		"contact_form_recaptcha_secret_key": "secret",
		"contact_form_email":                "owner@example.com",
		"contact_form_webhook_endpoint":     "https://hooks.example.com/contact",
	}
}

func TestProcessSuccess(t *testing.T) {
	f := newFixture(t, forms.Contact, contactSettings())

	result := f.pipeline.Process(context.Background(), contactPayload())

	assert.Equal(t, http.StatusOK, result.Status)
	assert.Equal(t, CodeSuccess, result.Code)
	assert.Equal(t, "The contact_form was sent to your email!", result.Message)

	require.Len(t, f.mailer.Sent(), 1)
	sent := f.mailer.Sent()[0]
	assert.Equal(t, "owner@example.com", sent.To)
	assert.Equal(t, "New contact form submission", sent.Subject)
	assert.Contains(t, sent.HTMLBody, "Jane")

	assert.Equal(t, []string{"https://hooks.example.com/contact"}, f.relay.calls)
}

func TestProcessMissingFieldsMakesNoDownstreamCalls(t *testing.T) {
	for _, field := range forms.Contact.RequiredFields {
		t.Run(field, func(t *testing.T) {
			f := newFixture(t, forms.Contact, contactSettings())

			payload := contactPayload()
			delete(payload, field)
			result := f.pipeline.Process(context.Background(), payload)

			assert.Equal(t, http.StatusBadRequest, result.Status)
			assert.Equal(t, CodeMissingFields, result.Code)
			assert.Equal(t, "All fields are required.", result.Message)

			assert.Zero(t, f.verifier.calls, "no reCAPTCHA call on validation failure")
			assert.Empty(t, f.mailer.Sent(), "no email on validation failure")
			assert.Empty(t, f.relay.calls, "no webhook on validation failure")
		})
	}
}

func TestProcessEmptyRequiredFieldRejected(t *testing.T) {
	f := newFixture(t, forms.Contact, contactSettings())

	payload := contactPayload()
	payload["message"] = "   " // whitespace still counts as present; server checks emptiness only
	payload["first_name"] = ""
	result := f.pipeline.Process(context.Background(), payload)

	assert.Equal(t, CodeMissingFields, result.Code)
	assert.Zero(t, f.verifier.calls)
}

func TestProcessInvalidEmailRejected(t *testing.T) {
	f := newFixture(t, forms.Contact, contactSettings())

	payload := contactPayload()
	payload["email"] = "not-an-email"
	result := f.pipeline.Process(context.Background(), payload)

	assert.Equal(t, http.StatusBadRequest, result.Status)
	assert.Equal(t, CodeInvalidEmail, result.Code)
	assert.Zero(t, f.verifier.calls)
}

func TestProcessMissingTokenRejected(t *testing.T) {
	f := newFixture(t, forms.Contact, contactSettings())

	payload := contactPayload()
	payload["recaptchaToken"] = ""
	result := f.pipeline.Process(context.Background(), payload)

	assert.Equal(t, http.StatusBadRequest, result.Status)
	assert.Equal(t, CodeMissingToken, result.Code)
	assert.Equal(t, "You did not submit reCAPTCHA token.", result.Message)
	assert.Zero(t, f.verifier.calls)
}

func TestProcessRecaptchaRejectedBlocksDownstream(t *testing.T) {
	f := newFixture(t, forms.Contact, contactSettings())
	f.verifier.verifyFunc = func(ctx context.Context, token, secret string) VerificationResult {
		return VerificationResult{Status: VerificationRejected, Score: 0.2, Reason: "score too low"}
	}

	result := f.pipeline.Process(context.Background(), contactPayload())

	assert.Equal(t, http.StatusForbidden, result.Status)
	assert.Equal(t, CodeRecaptchaInvalid, result.Code)
	assert.Equal(t, "reCAPTCHA verification failed. You might be a bot.", result.Message)
	assert.Empty(t, f.mailer.Sent())
	assert.Empty(t, f.relay.calls)
}

func TestProcessRecaptchaTransportErrorIs500(t *testing.T) {
	f := newFixture(t, forms.Contact, contactSettings())
	f.verifier.verifyFunc = func(ctx context.Context, token, secret string) VerificationResult {
		return VerificationResult{Status: VerificationTransportError, Reason: "connection refused"}
	}

	result := f.pipeline.Process(context.Background(), contactPayload())

	assert.Equal(t, http.StatusInternalServerError, result.Status)
	assert.Equal(t, CodeRecaptchaFailed, result.Code)
	assert.ErrorIs(t, result.Err, ErrTransport)
	assert.Empty(t, f.mailer.Sent())
	assert.Empty(t, f.relay.calls)
}

func TestProcessEmailBeforeWebhook(t *testing.T) {
	f := newFixture(t, forms.Contact, contactSettings())

	var order []string
	// The mock mailer records synchronously, so comparing counts at relay time
	// pins the ordering.
	f.relay.relayFunc = func(ctx context.Context, url string, payload []byte) error {
		assert.Len(t, f.mailer.Sent(), 1, "email must be dispatched before the webhook relay")
		order = append(order, "webhook")
		return nil
	}

	result := f.pipeline.Process(context.Background(), contactPayload())

	require.True(t, result.Success())
	assert.Equal(t, []string{"webhook"}, order)
	assert.Len(t, f.mailer.Sent(), 1, "exactly one email dispatch")
}

func TestProcessEmailFailureSkipsWebhook(t *testing.T) {
	f := newFixture(t, forms.Contact, contactSettings())
	f.mailer.Err = errors.New("smtp 550: mailbox unavailable")

	result := f.pipeline.Process(context.Background(), contactPayload())

	assert.Equal(t, http.StatusInternalServerError, result.Status)
	assert.Equal(t, CodeEmailFailed, result.Code)
	assert.Empty(t, f.relay.calls, "webhook must not run after a failed email")
}

func TestProcessWebhookFailure(t *testing.T) {
	f := newFixture(t, forms.Contact, contactSettings())
	f.relay.relayFunc = func(ctx context.Context, url string, payload []byte) error {
		return errors.New("webhook returned status 502")
	}

	result := f.pipeline.Process(context.Background(), contactPayload())

	assert.Equal(t, http.StatusInternalServerError, result.Status)
	assert.Equal(t, CodeWebhookFailed, result.Code)
	assert.Equal(t, "There was an error with your request. Please try again later.", result.Message)
	// The email already went out; partial success still reports failure.
	assert.Len(t, f.mailer.Sent(), 1)
}

func TestProcessContactSkipsRelayWhenUnconfigured(t *testing.T) {
	settings := contactSettings()
	delete(settings, "contact_form_webhook_endpoint")
	f := newFixture(t, forms.Contact, settings)

	result := f.pipeline.Process(context.Background(), contactPayload())

	assert.Equal(t, http.StatusOK, result.Status)
	assert.Equal(t, CodeSuccess, result.Code)
	assert.Empty(t, f.relay.calls, "contact variant skips relay when no endpoint is set")
}

func TestProcessWhitepaperAttemptsRelayWhenUnconfigured(t *testing.T) {
	f := newFixture(t, forms.Whitepaper, map[string]string{
		"whitepaper_recaptcha_secret_key": "secret",
	})
	f.relay.relayFunc = func(ctx context.Context, url string, payload []byte) error {
		assert.Equal(t, "", url)
		return errors.New("webhook: not configured")
	}

	result := f.pipeline.Process(context.Background(), whitepaperPayload())

	assert.Equal(t, CodeWebhookFailed, result.Code, "whitepaper variant relays even with no endpoint configured")
	assert.Len(t, f.relay.calls, 1)
}

func TestProcessWhitepaperMailsSubmitter(t *testing.T) {
	f := newFixture(t, forms.Whitepaper, map[string]string{
		"whitepaper_recaptcha_secret_key": "secret",
		"whitepaper_webhook_endpoint":     "https://hooks.example.com/wp",
	})

	result := f.pipeline.Process(context.Background(), whitepaperPayload())

	require.True(t, result.Success())
	assert.Equal(t, "The whitepaper was sent to your email!", result.Message)

	require.Len(t, f.mailer.Sent(), 1)
	sent := f.mailer.Sent()[0]
	assert.Equal(t, "jane@example.com", sent.To)
	assert.Equal(t, "Your Whitepaper Is Ready to Download!", sent.Subject)
	assert.Contains(t, sent.HTMLBody, "DentaPreg")
}

func TestProcessWhitepaperRejectsUnknownType(t *testing.T) {
	f := newFixture(t, forms.Whitepaper, map[string]string{
		"whitepaper_recaptcha_secret_key": "secret",
	})

	payload := whitepaperPayload()
	payload["type"] = "brochure"
	result := f.pipeline.Process(context.Background(), payload)

	assert.Equal(t, http.StatusBadRequest, result.Status)
	assert.Equal(t, CodeInvalidType, result.Code)
	assert.Zero(t, f.verifier.calls)
}

func TestProcessMissingAdminRecipientIsEmailFailure(t *testing.T) {
	settings := contactSettings()
	delete(settings, "contact_form_email")
	f := newFixture(t, forms.Contact, settings)

	result := f.pipeline.Process(context.Background(), contactPayload())

	assert.Equal(t, CodeEmailFailed, result.Code)
	assert.ErrorIs(t, result.Err, ErrNotConfigured)
	assert.Empty(t, f.relay.calls)
}

func TestProcessRelayPayloadIsRawSubmission(t *testing.T) {
	f := newFixture(t, forms.Contact, contactSettings())

	var got []byte
	f.relay.relayFunc = func(ctx context.Context, url string, payload []byte) error {
		got = payload
		return nil
	}

	result := f.pipeline.Process(context.Background(), contactPayload())

	require.True(t, result.Success())
	assert.Contains(t, string(got), `"recaptchaToken":"tok"`)
	assert.Contains(t, string(got), `"first_name":"Jane"`)
}

func TestProcessSubscribeStringCoercion(t *testing.T) {
	f := newFixture(t, forms.Whitepaper, map[string]string{
		"whitepaper_recaptcha_secret_key": "secret",
		"whitepaper_webhook_endpoint":     "https://hooks.example.com/wp",
	})

	payload := whitepaperPayload()
	payload["subscribe"] = "true"
	result := f.pipeline.Process(context.Background(), payload)

	require.True(t, result.Success())
	require.Len(t, f.mailer.Sent(), 1)
	assert.Contains(t, f.mailer.Sent()[0].HTMLBody, "newsletter")
}
