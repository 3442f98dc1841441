package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// VerificationStatus is the outcome class of a reCAPTCHA check.
type VerificationStatus int

const (
	// VerificationAccepted means the token checked out and the score cleared
	// the threshold.
	VerificationAccepted VerificationStatus = iota
	// VerificationRejected means Google answered but the token or score did
	// not pass. Treated as a probable bot.
	VerificationRejected
	// VerificationTransportError means the verification service could not be
	// reached or gave an unparseable answer.
	VerificationTransportError
)

// VerificationResult carries the outcome of one reCAPTCHA check. The score is
// retained for logging even when the check passes.
type VerificationResult struct {
	Status VerificationStatus
	Score  float64
	Reason string
}

// RecaptchaVerifier verifies a client-obtained reCAPTCHA token against the
// variant's shared secret.
type RecaptchaVerifier interface {
	Verify(ctx context.Context, token, secret string) VerificationResult
}

// RecaptchaService handles reCAPTCHA verification
type RecaptchaService struct {
	verifyURL string
	minScore  float64
	client    *http.Client
}

// NewRecaptchaService creates a new reCAPTCHA service. The HTTP client is
// bounded by the given timeout; the original plugins ran with the platform
// default and could block indefinitely.
func NewRecaptchaService(verifyURL string, minScore float64, timeout time.Duration) *RecaptchaService {
	return &RecaptchaService{
		verifyURL: verifyURL,
		minScore:  minScore,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// recaptchaResponse represents the response from Google's reCAPTCHA API
type recaptchaResponse struct {
	Success     bool     `json:"success"`
	Score       float64  `json:"score"`
	Action      string   `json:"action"`
	ChallengeTS string   `json:"challenge_ts"`
	Hostname    string   `json:"hostname"`
	ErrorCodes  []string `json:"error-codes,omitempty"`
}

// Verify checks the token with the verification service. One outbound
// form-encoded POST, no caching, no retry.
func (s *RecaptchaService) Verify(ctx context.Context, token, secret string) VerificationResult {
	data := url.Values{}
	data.Set("secret", secret)
	data.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.verifyURL, strings.NewReader(data.Encode()))
	if err != nil {
		return VerificationResult{
			Status: VerificationTransportError,
			Reason: fmt.Sprintf("failed to build verification request: %v", err),
		}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return VerificationResult{
			Status: VerificationTransportError,
			Reason: fmt.Sprintf("failed to verify reCAPTCHA: %v", err),
		}
	}
	defer resp.Body.Close()

	var result recaptchaResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return VerificationResult{
			Status: VerificationTransportError,
			Reason: fmt.Sprintf("failed to parse reCAPTCHA response: %v", err),
		}
	}

	if !result.Success {
		return VerificationResult{
			Status: VerificationRejected,
			Score:  result.Score,
			Reason: fmt.Sprintf("reCAPTCHA verification failed: %v", result.ErrorCodes),
		}
	}

	if result.Score < s.minScore {
		return VerificationResult{
			Status: VerificationRejected,
			Score:  result.Score,
			Reason: fmt.Sprintf("reCAPTCHA score too low: %.2f < %.2f", result.Score, s.minScore),
		}
	}

	return VerificationResult{
		Status: VerificationAccepted,
		Score:  result.Score,
	}
}
