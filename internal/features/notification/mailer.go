package notification

import (
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"go-permit/internal/config"
)

// Mailer sends approval emails over SMTP. Disabled (no-op error) when no
// host is configured, so local setups run without a mail server.
type Mailer struct {
	cfg *config.Config
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{cfg: cfg}
}

func (m *Mailer) Send(to []string, subject, body string) error {
	if m.cfg.SMTPHost == "" {
		return errors.New("smtp not configured")
	}

	auth := smtp.PlainAuth("", m.cfg.SMTPUser, m.cfg.SMTPPassword, m.cfg.SMTPHost)
	addr := fmt.Sprintf("%s:%d", m.cfg.SMTPHost, m.cfg.SMTPPort)

	from := m.cfg.SMTPFrom
	if from == "" {
		from = m.cfg.SMTPUser
	}

	msg := strings.Join([]string{
		"From: " + from,
		"To: " + strings.Join(to, ", "),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	return smtp.SendMail(addr, auth, from, to, []byte(msg))
}
