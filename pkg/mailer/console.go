package mailer

import (
	"context"

	"go.uber.org/zap"
)

// ConsoleSender writes emails to the log instead of delivering them.
type ConsoleSender struct {
	log *zap.Logger
}

func NewConsoleSender(log *zap.Logger) *ConsoleSender {
	return &ConsoleSender{log: log.With(zap.String("mailer", "console"))}
}

func (s *ConsoleSender) Send(_ context.Context, msg Message) error {
	s.log.Info("Email",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Body),
	)
	return nil
}
