package service

import "errors"

// Sentinel errors for service layer
var (
	ErrNotConfigured = errors.New("not configured")
	ErrTransport     = errors.New("transport error")
)

// Outcome codes returned by the submission pipeline. The string values are the
// error codes the original REST endpoints emitted and are part of the wire
// contract with existing front-ends.
const (
	CodeSuccess          = "success"
	CodeMissingFields    = "missing_fields"
	CodeInvalidEmail     = "invalid_email"
	CodeInvalidType      = "invalid_type"
	CodeMissingToken     = "missing_recaptcha_token"
	CodeRecaptchaFailed  = "recaptcha_failed"
	CodeRecaptchaInvalid = "recaptcha_invalid"
	CodeEmailFailed      = "email_failed"
	CodeWebhookFailed    = "webhook_failed"
)

// User-facing messages, verbatim from the original plugins.
const (
	MsgMissingFields    = "All fields are required."
	MsgInvalidEmail     = "Please enter a valid email address."
	MsgInvalidType      = "Invalid whitepaper type."
	MsgMissingToken     = "You did not submit reCAPTCHA token."
	MsgRecaptchaFailed  = "Unable to verify reCAPTCHA. Please try again later."
	MsgRecaptchaInvalid = "reCAPTCHA verification failed. You might be a bot."
	MsgEmailFailed      = "We have a problem with email delivery. Please check that you have entered your email correctly or try again later."
	MsgWebhookFailed    = "There was an error with your request. Please try again later."
)
