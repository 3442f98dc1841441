package mail

import (
	"context"
	"sync"
)

// MockMailer records sends instead of delivering them. Used in tests and in
// DB-less development setups where no SMTP server is available.
type MockMailer struct {
	mu   sync.Mutex
	sent []Message

	// Err, when set, is returned by every Send call.
	Err error
}

// NewMockMailer creates a mock mailer that succeeds on every send.
func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) Send(_ context.Context, msg *Message) error {
	if m.Err != nil {
		return m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, *msg)
	return nil
}

// Sent returns a copy of every message delivered so far.
func (m *MockMailer) Sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Message, len(m.sent))
	copy(out, m.sent)
	return out
}
