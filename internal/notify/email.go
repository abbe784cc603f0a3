package notify

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"skylink/internal/config"
)

// EmailSender delivers ticket documents and greetings over SMTP.
type EmailSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailSender(cfg config.EmailConfig) *EmailSender {
	return &EmailSender{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:   cfg.From,
	}
}

func (e *EmailSender) SendTicket(to string, pdfPath string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", e.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your SkyLink ticket")
	m.SetBody("text/plain", "Your ticket is attached. Have a pleasant flight.")
	m.Attach(pdfPath)

	if err := e.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send ticket email: %w", err)
	}
	return nil
}

// SendGreeting is the weekly hello mail for active users.
func (e *EmailSender) SendGreeting(to string, username string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", e.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Greetings from SkyLink")
	m.SetBody("text/plain", fmt.Sprintf("Hello %s! Thanks for flying with SkyLink.", username))

	if err := e.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send greeting email: %w", err)
	}
	return nil
}
