package service

import (
	"log"

	"gopkg.in/gomail.v2"
)

type EmailService interface{ Send(to, subject, body string) error }

type SMTPConfig struct {
	Host, User, Pass, From string
	Port                   int
}

type smtpEmail struct {
	cfg    SMTPConfig
	dialer *gomail.Dialer
}

// NewEmailService returns a mailer that logs instead of sending when no SMTP
// host is configured.
func NewEmailService(cfg SMTPConfig) EmailService {
	if cfg.Host == "" {
		return logEmail{}
	}
	if cfg.From == "" {
		cfg.From = cfg.User
	}
	return &smtpEmail{cfg: cfg, dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass)}
}

func (s *smtpEmail) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	return s.dialer.DialAndSend(m)
}

type logEmail struct{}

func (logEmail) Send(to, subject, _ string) error {
	log.Printf("mail disabled; dropping %q to %s", subject, to)
	return nil
}
