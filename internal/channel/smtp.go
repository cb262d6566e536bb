package channel

import (
	"context"
	"errors"
	"log/slog"

	"gopkg.in/gomail.v2"
)

// ErrAlertsDisabled is returned when outbound alert mail is switched off by
// configuration; the mailer fails closed rather than silently dropping.
var ErrAlertsDisabled = errors.New("emergency alert mail is disabled")

// SMTPMailer is the plain-channel collaborator: it submits composed HTML mail
// over the configured SMTP relay.
type SMTPMailer struct {
	dialer  *gomail.Dialer
	from    string
	enabled bool
}

func NewSMTPMailer(host string, port int, username, password, from string, enabled bool) *SMTPMailer {
	return &SMTPMailer{
		dialer:  gomail.NewDialer(host, port, username, password),
		from:    from,
		enabled: enabled,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, recipients []string, subject, body string) error {
	if !m.enabled {
		slog.Info("alert mail suppressed, alerts disabled")
		return ErrAlertsDisabled
	}
	if len(recipients) == 0 {
		return errors.New("no recipients specified")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", recipients...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return err
	}

	slog.Info("alert mail submitted", "recipients", len(recipients))
	return nil
}
