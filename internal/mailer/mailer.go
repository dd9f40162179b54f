// Package mailer sends transactional email through Resend. When no API key
// is configured it degrades to logging the message, which keeps local
// development working without external credentials.
package mailer

import (
	"context"
	"fmt"

	"vipgate/internal/middleware"

	"github.com/resend/resend-go/v3"
)

// Mailer delivers transactional messages.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, resetURL string) error
}

type resendMailer struct {
	client *resend.Client
	from   string
}

type logMailer struct{}

// New returns a Resend-backed mailer, or a logging no-op when apiKey is empty.
func New(apiKey, from string) Mailer {
	if apiKey == "" {
		middleware.Logger.Warn("no mail API key configured, emails will be logged only")
		return &logMailer{}
	}
	return &resendMailer{client: resend.NewClient(apiKey), from: from}
}

func (m *resendMailer) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: "Reset your password",
		Html: fmt.Sprintf(
			`<p>We received a request to reset your password.</p>`+
				`<p><a href="%s">Click here to choose a new one.</a></p>`+
				`<p>The link expires in one hour. If you didn't ask for this, ignore this email.</p>`,
			resetURL),
	}
	if _, err := m.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("sending password reset email: %w", err)
	}
	middleware.Logger.InfoContext(ctx, "password reset email sent", "to", to)
	return nil
}

func (m *logMailer) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	middleware.Logger.InfoContext(ctx, "password reset email (log only)", "to", to, "reset_url", resetURL)
	return nil
}
