package notifier

import (
	"context"

	"github.com/brightwell-digital/cms-backend/pkg/logger"
)

type loggingMailer struct {
	logg *logger.Logger
}

// NewLogging returns a Mailer that only logs. It stands in for SendGrid
// in local development where no API key is configured.
func NewLogging(logg *logger.Logger) Mailer {
	return &loggingMailer{logg: logg}
}

func (m *loggingMailer) Send(ctx context.Context, msg Message) error {
	ctx = m.logg.WithFields(ctx, map[string]any{
		"to":      msg.ToEmail,
		"subject": msg.Subject,
	})
	m.logg.Info(ctx, "mail delivery skipped (no provider configured)")
	return nil
}
