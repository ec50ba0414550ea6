package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

// SMTPProvider sends notifications over SMTP.
type SMTPProvider struct {
	cfg SMTPConfig
}

func NewSMTPProvider(cfg SMTPConfig) (*SMTPProvider, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid SMTP port: %d", cfg.Port)
	}
	if cfg.FromEmail == "" {
		return nil, fmt.Errorf("from email is required")
	}
	return &SMTPProvider{cfg: cfg}, nil
}

func (p *SMTPProvider) SendRegistrationApproved(to, fullName string) error {
	body := fmt.Sprintf(
		"<p>Hello %s,</p><p>Your registration request has been approved. You can now log in with the credentials you submitted.</p>",
		fullName,
	)
	return p.send(to, "Your registration has been approved", body)
}

func (p *SMTPProvider) SendRegistrationRejected(to, fullName, reason string) error {
	body := fmt.Sprintf(
		"<p>Hello %s,</p><p>Your registration request has been rejected.</p>",
		fullName,
	)
	if reason != "" {
		body += fmt.Sprintf("<p>Reason: %s</p>", reason)
	}
	return p.send(to, "Your registration request was rejected", body)
}

func (p *SMTPProvider) send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(p.cfg.FromEmail, p.cfg.FromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(p.cfg.Host, p.cfg.Port, p.cfg.Username, p.cfg.Password)
	return d.DialAndSend(m)
}
