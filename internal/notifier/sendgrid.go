package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/brightwell-digital/cms-backend/pkg/config"
	pkgerrors "github.com/brightwell-digital/cms-backend/pkg/errors"
)

const sendgridSendURL = "https://api.sendgrid.com/v3/mail/send"

type sendgridMailer struct {
	cfg     config.SendgridConfig
	client  *http.Client
	sendURL string
}

// NewSendgrid returns a Mailer backed by the SendGrid v3 send endpoint.
func NewSendgrid(cfg config.SendgridConfig) (Mailer, error) {
	if cfg.APIKey == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "sendgrid api key required")
	}
	if cfg.FromEmail == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "sendgrid from address required")
	}
	return &sendgridMailer{
		cfg:     cfg,
		client:  &http.Client{Timeout: 10 * time.Second},
		sendURL: sendgridSendURL,
	}, nil
}

type sendgridAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendgridPayload struct {
	Personalizations []struct {
		To []sendgridAddress `json:"to"`
	} `json:"personalizations"`
	From    sendgridAddress `json:"from"`
	Subject string          `json:"subject"`
	Content []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"content"`
}

func (m *sendgridMailer) Send(ctx context.Context, msg Message) error {
	payload := sendgridPayload{
		From:    sendgridAddress{Email: m.cfg.FromEmail, Name: m.cfg.FromName},
		Subject: msg.Subject,
	}
	payload.Personalizations = append(payload.Personalizations, struct {
		To []sendgridAddress `json:"to"`
	}{To: []sendgridAddress{{Email: msg.ToEmail, Name: msg.ToName}}})
	payload.Content = append(payload.Content, struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	}{Type: "text/plain", Value: msg.Body})

	body, err := json.Marshal(payload)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode mail payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.sendURL, bytes.NewReader(body))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build mail request")
	}
	req.Header.Set("Authorization", "Bearer "+m.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send mail")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return pkgerrors.New(pkgerrors.CodeDependency,
			fmt.Sprintf("sendgrid returned %d: %s", resp.StatusCode, string(detail)))
	}
	return nil
}
