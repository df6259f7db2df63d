package mailer

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Mailer sends transactional mail. The SMTP implementation logs and swallows
// delivery failures so registration never blocks on the mail provider.
type Mailer interface {
	SendVerificationCode(to, code string) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	log    *logrus.Logger
}

func NewSMTP(host string, port int, username, password, from string, log *logrus.Logger) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		log:    log,
	}
}

func (m *SMTPMailer) SendVerificationCode(to, code string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Email verification")
	msg.SetBody("text/html", fmt.Sprintf(
		`<p>Your verification code is:</p><h1 style="letter-spacing:5px">%s</h1><p>It expires in 10 minutes.</p>`,
		code,
	))

	if err := m.dialer.DialAndSend(msg); err != nil {
		// Keep registration usable without a reachable SMTP server; the code
		// stays valid and can be resent.
		m.log.WithError(err).WithField("to", to).Warn("verification email not delivered")
	}
	return nil
}

// NoopMailer discards mail; used in tests and local runs without SMTP config.
type NoopMailer struct{}

func (NoopMailer) SendVerificationCode(string, string) error { return nil }
