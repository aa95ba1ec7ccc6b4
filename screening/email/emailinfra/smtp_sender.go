package emailinfra

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/talentsift/screening/pkg/kernel"
	"github.com/talentsift/screening/screening/email"
)

// SMTPSender implements email.Sender over plain SMTP with STARTTLS
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
}

func NewSMTPSender(host string, port int, username, password string) *SMTPSender {
	if host == "" {
		host = "smtp.gmail.com"
	}
	if port == 0 {
		port = 587
	}
	return &SMTPSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
	}
}

// Configured reports whether credentials are present
func (s *SMTPSender) Configured() bool {
	return s.username != "" && s.password != ""
}

func (s *SMTPSender) Send(ctx context.Context, to kernel.Email, subject, body string) error {
	if !s.Configured() {
		return email.ErrNotConfigured().
			WithDetail("hint", "set EMAIL_USER and EMAIL_PASSWORD")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := buildMessage(s.username, to.String(), subject, body)
	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	if err := smtp.SendMail(addr, auth, s.username, []string{to.String()}, msg); err != nil {
		return email.ErrSendFailed().
			WithDetail("recipient", to.String()).
			WithDetail("cause", err.Error())
	}

	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}
