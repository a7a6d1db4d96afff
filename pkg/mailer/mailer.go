package mailer

import (
	"context"
	"errors"
	"fmt"

	"hirehub/pkg/utils"

	"go.uber.org/zap"
)

// Message is a plain-text transactional email.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ErrInvalidMessage marks a message no retry can deliver.
var ErrInvalidMessage = errors.New("invalid mail message")

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// New builds the sender selected by config.Email.Backend. The returned close
// function releases broker connections and is always non-nil.
func New(config *utils.Config, log *zap.Logger) (Sender, func(), error) {
	switch config.Email.Backend {
	case "console":
		return NewConsoleSender(log), func() {}, nil
	case "smtp":
		return NewSMTPSender(config.Email, log), func() {}, nil
	case "queue":
		pub := NewQueuePublisher(config.Queue.URL, config.Queue.MailQueue, log)
		return pub, pub.Close, nil
	}
	return nil, func() {}, fmt.Errorf("unknown mail backend %q", config.Email.Backend)
}

func VerificationEmail(to, name, link string) Message {
	return Message{
		To:      to,
		Subject: "Verify your email",
		Body:    fmt.Sprintf("Hi %s,\n\nUse the link below to verify your email:\n%s\n", name, link),
	}
}

func ResetEmail(to, link string) Message {
	return Message{
		To:      to,
		Subject: "Reset your password",
		Body:    fmt.Sprintf("Hello,\n\nUse the link below to reset your password:\n%s\n\nIf you did not ask for a reset, ignore this email.\n", link),
	}
}

func ApprovalEmail(to, name, status string) Message {
	body := fmt.Sprintf("Hi %s,\n\nYour provider account has been approved. You can now log in.\n", name)
	if status != "approved" {
		body = fmt.Sprintf("Hi %s,\n\nYour provider account application has been %s.\n", name, status)
	}
	return Message{
		To:      to,
		Subject: "Your provider account",
		Body:    body,
	}
}
