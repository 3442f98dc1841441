package mail

import "context"

// Message is one outbound notification email. Bodies are HTML, matching the
// Content-Type the original plugins set on wp_mail.
type Message struct {
	To       string
	Subject  string
	HTMLBody string
}

// Mailer performs a single synchronous send attempt. There is no queue and no
// retry; a failed send surfaces to the caller as-is.
type Mailer interface {
	Send(ctx context.Context, msg *Message) error
}
