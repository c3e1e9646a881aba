package notifier

import "context"

// Message is one outbound transactional email.
type Message struct {
	ToEmail string
	ToName  string
	Subject string
	Body    string
}

// Mailer delivers transactional email. Implementations must be safe for
// concurrent use.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
