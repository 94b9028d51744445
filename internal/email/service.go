package email

import (
	"context"
	"crypto/tls"
	"fmt"

	"gopkg.in/gomail.v2"
)

type Service interface {
	Send(ctx context.Context, to, subject, body string) error
}

type Config struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPService creates a gomail-backed sender.
func NewSMTPService(cfg Config) Service {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	dialer.TLSConfig = &tls.Config{ServerName: cfg.Host}
	return &smtpService{
		dialer: dialer,
		from:   cfg.From,
	}
}

func (s *smtpService) Send(ctx context.Context, to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

type noopService struct{}

// NewNoopService returns a sender that discards everything. Used when SMTP
// is not configured.
func NewNoopService() Service { return noopService{} }

func (noopService) Send(ctx context.Context, to, subject, body string) error { return nil }
