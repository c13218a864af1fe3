package notify

import (
	"context"

	"go.uber.org/zap"
)

// Sender delivers a single plain-text email.
type Sender interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

// ConsoleSender only logs the email. Used in development.
type ConsoleSender struct {
	log *zap.Logger
}

func NewConsoleSender(log *zap.Logger) *ConsoleSender {
	return &ConsoleSender{log: log}
}

func (s *ConsoleSender) Send(_ context.Context, from, to, subject, body string) error {
	s.log.Info("email (console)",
		zap.String("from", from),
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}
