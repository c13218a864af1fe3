package notify

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

type SMTPOpts struct {
	Server string
	Port   int
}

// SMTPSender opens a new SMTP connection for every message. No TLS, no auth,
// no retry.
type SMTPSender struct {
	opts SMTPOpts
	log  *zap.Logger
}

func NewSMTPSender(opts SMTPOpts, log *zap.Logger) *SMTPSender {
	if opts.Port <= 0 {
		opts.Port = 25
	}
	if opts.Server == "" {
		opts.Server = "localhost"
	}
	return &SMTPSender{opts: opts, log: log}
}

func (s *SMTPSender) Send(ctx context.Context, from, to, subject, body string) error {
	msg, err := buildMessage(from, to, subject, body)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(s.opts.Server,
		mail.WithPort(s.opts.Port),
		mail.WithTLSPolicy(mail.NoTLS),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}

	s.log.Info("welcome email sent", zap.String("to", to), zap.String("server", s.opts.Server))
	return nil
}

func buildMessage(from, to, subject, body string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.FromFormat(from, from); err != nil {
		return nil, fmt.Errorf("from address %q: %w", from, err)
	}
	if err := msg.AddToFormat(to, to); err != nil {
		return nil, fmt.Errorf("to address %q: %w", to, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)
	return msg, nil
}
