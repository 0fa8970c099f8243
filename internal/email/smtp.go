package email

import (
	"fmt"
	"net/smtp"
	"strconv"

	jemail "github.com/jordan-wright/email"
)

// SMTPSender delivers HTML email through an SMTP relay with PLAIN auth.
type SMTPSender struct {
	host          string
	port          int
	username      string
	password      string
	senderAddress string

	// send is swapped in tests to avoid a network dial.
	send func(e *jemail.Email, addr string, auth smtp.Auth) error
}

// NewSMTPSender creates an SMTPSender.
func NewSMTPSender(host string, port int, username, password, senderAddress string) *SMTPSender {
	return &SMTPSender{
		host:          host,
		port:          port,
		username:      username,
		password:      password,
		senderAddress: senderAddress,
		send: func(e *jemail.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}
}

// Send builds the message and hands it to the relay.
func (s *SMTPSender) Send(to, subject, htmlBody string) error {
	e := jemail.NewEmail()
	e.From = s.senderAddress
	if e.From == "" {
		e.From = s.username
	}
	e.To = []string{to}
	e.Subject = subject
	e.HTML = []byte(htmlBody)

	addr := s.host + ":" + strconv.Itoa(s.port)
	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	if err := s.send(e, addr, auth); err != nil {
		return fmt.Errorf("smtp send to %s failed: %w", to, err)
	}
	return nil
}
