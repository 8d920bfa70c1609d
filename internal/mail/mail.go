// Package mail delivers transactional email over SMTP.
package mail

import (
	"context"
	"crypto/tls"
	"fmt"

	gomail "github.com/go-mail/mail"
	"go.uber.org/zap"

	"storeadmin/internal/config"
)

// Message is a single outgoing email. Either body may be empty.
type Message struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Sender delivers messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// New returns an SMTP sender, or a sender that only logs when no SMTP host is configured.
func New(cfg config.SMTPConfig, log *zap.Logger) Sender {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("component", "mail"))
	if cfg.Host == "" {
		log.Info("smtp not configured, emails will be logged only")
		return &NopSender{log: log}
	}
	return &SMTPSender{cfg: cfg, log: log}
}

// SMTPSender sends mail through an SMTP relay.
type SMTPSender struct {
	cfg config.SMTPConfig
	log *zap.Logger
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	switch {
	case msg.TextBody != "" && msg.HTMLBody != "":
		m.SetBody("text/plain", msg.TextBody)
		m.AddAlternative("text/html", msg.HTMLBody)
	case msg.HTMLBody != "":
		m.SetBody("text/html", msg.HTMLBody)
	default:
		m.SetBody("text/plain", msg.TextBody)
	}

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	d.TLSConfig = &tls.Config{ServerName: s.cfg.Host}
	switch s.cfg.TLSMode {
	case "ssl":
		d.SSL = true
	case "none":
		d.StartTLSPolicy = gomail.NoStartTLS
	case "starttls":
		d.StartTLSPolicy = gomail.MandatoryStartTLS
	}

	if err := d.DialAndSend(m); err != nil {
		s.log.Error("smtp send failed", zap.String("to", msg.To), zap.Error(err))
		return fmt.Errorf("smtp send: %w", err)
	}
	s.log.Info("email sent", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}

// NopSender records messages in the log instead of delivering them.
type NopSender struct {
	log *zap.Logger
}

func (s *NopSender) Send(_ context.Context, msg Message) error {
	s.log.Info("email skipped", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}
