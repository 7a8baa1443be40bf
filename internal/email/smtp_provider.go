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

// SMTPProvider реализует Provider поверх gomail
type SMTPProvider struct {
	config *SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPProvider(config *SMTPConfig) *SMTPProvider {
	return &SMTPProvider{
		config: config,
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
	}
}

func (p *SMTPProvider) Send(email *Email) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.config.FromEmail, p.config.FromName)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)
	if email.IsHTML {
		m.SetBody("text/html", email.Body)
	} else {
		m.SetBody("text/plain", email.Body)
	}

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (p *SMTPProvider) SendStatusUpdate(to, jobTitle, status string) error {
	subject := fmt.Sprintf("Your application for %q was updated", jobTitle)
	body := fmt.Sprintf(
		"Hello,\n\nThe status of your application for %q is now: %s.\n\nMicroJob team",
		jobTitle, status,
	)
	return p.Send(&Email{
		To:      []string{to},
		Subject: subject,
		Body:    body,
	})
}

func (p *SMTPProvider) Close() error {
	// gomail открывает соединение на каждую отправку
	return nil
}
