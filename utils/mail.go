package utils

import (
	"context"
	"fmt"
	"time"

	"medvault/config"

	"gopkg.in/gomail.v2"
)

// Mailer sends outbound email. Injected so tests and the notification sink
// can swap in a no-op or recording implementation.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SMTPMailer is the production Mailer backed by gomail.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPMailer builds a mailer from the loaded config.
func NewSMTPMailer() *SMTPMailer {
	cfg := config.AppConfig
	return &SMTPMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if m.host == "" || m.from == "" {
		return fmt.Errorf("smtp mailer not configured")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(m.host, m.port, m.username, m.password)

	done := make(chan error, 1)
	go func() {
		done <- d.DialAndSend(msg)
	}()

	wait := 15 * time.Second
	if dl, ok := ctx.Deadline(); ok {
		if until := time.Until(dl); until > 0 && until < wait {
			wait = until
		}
	}

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(wait):
		return context.DeadlineExceeded
	}
}

// VerificationEmailBody renders the account verification email.
func VerificationEmailBody(link string) string {
	return fmt.Sprintf(
		`<p>Welcome to MedVault.</p>
<p>Please verify your email address by clicking the link below within 24 hours:</p>
<p><a href="%s">%s</a></p>
<p>If you did not create this account, ignore this message.</p>`, link, link)
}
