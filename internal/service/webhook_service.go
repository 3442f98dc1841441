package service

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"
)

// WebhookRelay forwards the raw submission payload to a configured external
// URL (CRM sync and the like). One POST per submission, no retry.
type WebhookRelay interface {
	Relay(ctx context.Context, url string, payload []byte) error
}

// WebhookService handles webhook delivery over HTTP.
type WebhookService struct {
	client *http.Client
}

// NewWebhookService creates a new webhook service with a bounded client.
func NewWebhookService(timeout time.Duration) *WebhookService {
	return &WebhookService{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Relay posts the payload as JSON. Any transport failure or non-2xx answer is
// an error; the caller decides what that means for the submission.
func (s *WebhookService) Relay(ctx context.Context, url string, payload []byte) error {
	if url == "" {
		return fmt.Errorf("webhook: %w", ErrNotConfigured)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
