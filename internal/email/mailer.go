package email

import (
	"net/smtp"

	"github.com/jordan-wright/email"

	"github.com/rigtrack/rigtrack-backend/pkg/config"
	pkgerrors "github.com/rigtrack/rigtrack-backend/pkg/errors"
)

// Mailer delivers a composed message to a list of recipients.
type Mailer interface {
	Send(to []string, subject, body string) error
}

type smtpMailer struct {
	cfg config.SMTPConfig
}

// NewSMTPMailer builds a mailer backed by the configured SMTP relay.
func NewSMTPMailer(cfg config.SMTPConfig) (Mailer, error) {
	if cfg.Host == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "smtp host required")
	}
	if cfg.From == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "smtp from address required")
	}
	return &smtpMailer{cfg: cfg}, nil
}

func (m *smtpMailer) Send(to []string, subject, body string) error {
	msg := email.NewEmail()
	msg.From = m.cfg.From
	msg.To = to
	msg.Subject = subject
	msg.HTML = []byte(body)

	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	}
	return msg.Send(m.cfg.Addr(), auth)
}
