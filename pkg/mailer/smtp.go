package mailer

import (
	"context"
	"fmt"
	"time"

	"hirehub/pkg/utils"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

type SMTPSender struct {
	config  utils.EmailConfig
	log     *zap.Logger
	timeout time.Duration
}

func NewSMTPSender(config utils.EmailConfig, log *zap.Logger) *SMTPSender {
	return &SMTPSender{
		config:  config,
		log:     log.With(zap.String("mailer", "smtp")),
		timeout: 10 * time.Second,
	}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m, err := buildMessage(s.config.From, msg, time.Now())
	if err != nil {
		return err
	}

	client, err := s.client()
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp send to %s: %w", msg.To, err)
	}

	s.log.Debug("Email delivered", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}

func (s *SMTPSender) client() (*mail.Client, error) {
	policy := mail.NoTLS
	if s.config.TLS {
		policy = mail.TLSMandatory
	}

	opts := []mail.Option{
		mail.WithPort(s.config.Port),
		mail.WithTimeout(s.timeout),
		mail.WithTLSPolicy(policy),
	}
	if s.config.User != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.config.User),
			mail.WithPassword(s.config.Password),
		)
	}

	return mail.NewClient(s.config.Host, opts...)
}

// buildMessage renders msg as a plain-text UTF-8 email. A bad recipient wraps
// ErrInvalidMessage; a bad sender is a configuration error.
func buildMessage(from string, msg Message, now time.Time) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(from); err != nil {
		return nil, fmt.Errorf("sender %q: %w", from, err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("%w: recipient %q: %v", ErrInvalidMessage, msg.To, err)
	}
	m.Subject(msg.Subject)
	m.SetDateWithValue(now)
	m.SetBodyString(mail.TypeTextPlain, msg.Body)
	return m, nil
}
