package mailer

import (
	"context"
	"fmt"
	"time"

	"birthday_tracker/internal/infra/config"

	"github.com/wneessen/go-mail"
)

const sendTimeout = 30 * time.Second

// SMTPNotifier sends reminder mails through an authenticated SMTP account.
// A client is dialed per Send; nothing is shared across invocations.
type SMTPNotifier struct {
	host     string
	port     int
	username string
	password string
	from     string
	missing  error // set when the account credentials are absent
}

func NewSMTPNotifier(cfg *config.AppConfig) *SMTPNotifier {
	return &SMTPNotifier{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.EmailUser,
		password: cfg.EmailPass,
		from:     cfg.EmailFrom,
		missing:  cfg.RequireMail(),
	}
}

func (n *SMTPNotifier) Send(ctx context.Context, to, subject, htmlBody string) error {
	if n.missing != nil {
		return n.missing
	}

	msg, err := buildMessage(n.from, to, subject, htmlBody)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(n.host,
		mail.WithPort(n.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(n.username),
		mail.WithPassword(n.password),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTimeout(sendTimeout),
	)
	if err != nil {
		return fmt.Errorf("failed to create mail client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

func buildMessage(from, to, subject, htmlBody string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender address %q: %w", from, err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient address %q: %w", to, err)
	}
	msg.Subject(subject)
	msg.SetDate()
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)
	return msg, nil
}
