package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"formgate/internal/api/sanitization"
	"formgate/internal/api/validation"
	"formgate/internal/forms"
	"formgate/internal/logging"
	"formgate/internal/mail"
	"formgate/internal/repository"
)

// Result is the single terminal outcome of one submission. Exactly one is
// produced per request; Status and Message go straight onto the wire.
type Result struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (r Result) Success() bool {
	return r.Code == CodeSuccess
}

// Submission is the sanitized form input after validation.
type Submission struct {
	FirstName string
	LastName  string
	Email     string
	Message   string
	Type      string
	Subscribe bool
}

// Pipeline orchestrates one submission: shape validation, token presence,
// reCAPTCHA verification, sanitation, email dispatch and webhook relay, in
// that order, each step short-circuiting on failure. The email must succeed before
// the relay is attempted so a delivery problem surfaces as email_failed
// instead of silently relaying. The pipeline holds no state across requests.
type Pipeline struct {
	variant  forms.Variant
	settings repository.SettingsRepository
	verifier RecaptchaVerifier
	mailer   mail.Mailer
	relay    WebhookRelay
	logger   *logging.Logger
}

// NewPipeline wires a pipeline for one form variant. All collaborators are
// injected, including the settings store read on every request.
func NewPipeline(
	variant forms.Variant,
	settings repository.SettingsRepository,
	verifier RecaptchaVerifier,
	mailer mail.Mailer,
	relay WebhookRelay,
) *Pipeline {
	return &Pipeline{
		variant:  variant,
		settings: settings,
		verifier: verifier,
		mailer:   mailer,
		relay:    relay,
		logger:   logging.GetGlobalLogger(),
	}
}

// Process runs the full pipeline over the decoded request body.
func (p *Pipeline) Process(ctx context.Context, raw map[string]interface{}) Result {
	// Shape validation: every variant-required field present and non-empty.
	for _, field := range p.variant.RequiredFields {
		if stringField(raw, field) == "" {
			return Result{Status: http.StatusBadRequest, Code: CodeMissingFields, Message: MsgMissingFields}
		}
	}

	if len(p.variant.TypeValues) > 0 && !p.variant.AllowsType(stringField(raw, "type")) {
		return Result{Status: http.StatusBadRequest, Code: CodeInvalidType, Message: MsgInvalidType}
	}

	if !validation.IsValidEmail(stringField(raw, "email")) {
		return Result{Status: http.StatusBadRequest, Code: CodeInvalidEmail, Message: MsgInvalidEmail}
	}

	token := stringField(raw, "recaptchaToken")
	if token == "" {
		return Result{Status: http.StatusBadRequest, Code: CodeMissingToken, Message: MsgMissingToken}
	}

	secret, err := p.settings.Get(ctx, p.variant.SecretKeySetting())
	if err != nil {
		return Result{Status: http.StatusInternalServerError, Code: CodeRecaptchaFailed, Message: MsgRecaptchaFailed, Err: err}
	}

	verification := p.verifier.Verify(ctx, token, secret)
	switch verification.Status {
	case VerificationTransportError:
		return Result{
			Status:  http.StatusInternalServerError,
			Code:    CodeRecaptchaFailed,
			Message: MsgRecaptchaFailed,
			Err:     fmt.Errorf("%w: %s", ErrTransport, verification.Reason),
		}
	case VerificationRejected:
		p.logger.Warn("[%s] reCAPTCHA rejected (score %.2f): %s", p.variant.Name, verification.Score, verification.Reason)
		return Result{
			Status:  http.StatusForbidden,
			Code:    CodeRecaptchaInvalid,
			Message: MsgRecaptchaInvalid,
		}
	}
	p.logger.Debug("[%s] reCAPTCHA accepted (score %.2f)", p.variant.Name, verification.Score)

	submission := Submission{
		FirstName: sanitization.SanitizeString(stringField(raw, "first_name")),
		LastName:  sanitization.SanitizeString(stringField(raw, "last_name")),
		Email:     sanitization.SanitizeEmail(stringField(raw, "email")),
		Message:   sanitization.SanitizeString(stringField(raw, "message")),
		Type:      sanitization.SanitizeString(stringField(raw, "type")),
		Subscribe: sanitization.CoerceBool(raw["subscribe"]),
	}

	if result := p.dispatchEmail(ctx, submission); !result.Success() {
		return result
	}

	if result := p.relayWebhook(ctx, raw); !result.Success() {
		return result
	}

	return Result{Status: http.StatusOK, Code: CodeSuccess, Message: p.variant.SuccessMessage}
}

func (p *Pipeline) dispatchEmail(ctx context.Context, submission Submission) Result {
	recipient := submission.Email
	if p.variant.Recipient == forms.RecipientAdmin {
		addr, err := p.settings.Get(ctx, p.variant.AdminEmailSetting())
		if err != nil {
			return Result{Status: http.StatusInternalServerError, Code: CodeEmailFailed, Message: MsgEmailFailed, Err: err}
		}
		recipient = addr
	}
	if recipient == "" {
		return Result{
			Status:  http.StatusInternalServerError,
			Code:    CodeEmailFailed,
			Message: MsgEmailFailed,
			Err:     fmt.Errorf("notification recipient: %w", ErrNotConfigured),
		}
	}

	body, err := mail.RenderBody(p.variant, mail.TemplateData{
		FirstName: submission.FirstName,
		LastName:  submission.LastName,
		Email:     submission.Email,
		Message:   submission.Message,
		Type:      submission.Type,
		Subscribe: submission.Subscribe,
	})
	if err != nil {
		return Result{Status: http.StatusInternalServerError, Code: CodeEmailFailed, Message: MsgEmailFailed, Err: err}
	}

	err = p.mailer.Send(ctx, &mail.Message{
		To:       recipient,
		Subject:  p.variant.EmailSubject,
		HTMLBody: body,
	})
	if err != nil {
		p.logger.Error("[%s] email dispatch failed: %v", p.variant.Name, err)
		return Result{Status: http.StatusInternalServerError, Code: CodeEmailFailed, Message: MsgEmailFailed, Err: err}
	}

	return Result{Code: CodeSuccess}
}

func (p *Pipeline) relayWebhook(ctx context.Context, raw map[string]interface{}) Result {
	url, err := p.settings.Get(ctx, p.variant.WebhookSetting())
	if err != nil {
		return Result{Status: http.StatusInternalServerError, Code: CodeWebhookFailed, Message: MsgWebhookFailed, Err: err}
	}

	if url == "" && !p.variant.RelayIfEmpty {
		return Result{Code: CodeSuccess}
	}

	// The webhook receives the raw submission as the client sent it, token
	// included, matching what downstream consumers were built against.
	payload, err := json.Marshal(raw)
	if err != nil {
		return Result{Status: http.StatusInternalServerError, Code: CodeWebhookFailed, Message: MsgWebhookFailed, Err: err}
	}

	if err := p.relay.Relay(ctx, url, payload); err != nil {
		p.logger.Error("[%s] webhook relay failed: %v", p.variant.Name, err)
		return Result{Status: http.StatusInternalServerError, Code: CodeWebhookFailed, Message: MsgWebhookFailed, Err: err}
	}

	return Result{Code: CodeSuccess}
}

func stringField(raw map[string]interface{}, key string) string {
	value, ok := raw[key].(string)
	if !ok {
		return ""
	}
	return value
}
