package mailer

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/jordan-wright/email"
)

// PreflightTimeout bounds the connectivity check before a send run.
const PreflightTimeout = 5 * time.Second

// SMTPMailer sends messages through an SMTP server, with STARTTLS by
// default or implicit TLS when requested.
type SMTPMailer struct {
	host        string
	addr        string
	user        string
	pass        string
	implicitTLS bool
}

// NewSMTPMailer creates an SMTP mailer for host:port. user and pass may be
// empty for servers that accept unauthenticated submission.
func NewSMTPMailer(host string, port int, user, pass string, implicitTLS bool) *SMTPMailer {
	return &SMTPMailer{
		host:        host,
		addr:        fmt.Sprintf("%s:%d", host, port),
		user:        user,
		pass:        pass,
		implicitTLS: implicitTLS,
	}
}

// Preflight opens an SMTP session before the run starts: it connects,
// negotiates TLS when the server offers it, and authenticates with the
// configured credentials, then quits without sending anything. An
// unreachable server or rejected credentials fail the whole run here,
// unlike per-recipient errors inside the send loop.
func (m *SMTPMailer) Preflight() error {
	var conn net.Conn
	var err error
	if m.implicitTLS {
		dialer := &net.Dialer{Timeout: PreflightTimeout}
		conn, err = tls.DialWithDialer(dialer, "tcp", m.addr, &tls.Config{ServerName: m.host})
	} else {
		conn, err = net.DialTimeout("tcp", m.addr, PreflightTimeout)
	}
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", m.addr, err)
	}

	c, err := smtp.NewClient(conn, m.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake with %s: %w", m.addr, err)
	}
	defer c.Close()

	if !m.implicitTLS {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err := c.StartTLS(&tls.Config{ServerName: m.host}); err != nil {
				return fmt.Errorf("starttls with %s: %w", m.addr, err)
			}
		}
	}

	if auth := m.auth(); auth != nil {
		if ok, _ := c.Extension("AUTH"); ok {
			if err := c.Auth(auth); err != nil {
				return fmt.Errorf("authenticating with %s: %w", m.addr, err)
			}
		}
	}

	return c.Quit()
}

// Send delivers one message with the CV attached when set.
func (m *SMTPMailer) Send(msg *Message) error {
	mail := email.NewEmail()
	mail.From = msg.From
	mail.To = []string{msg.To}
	mail.Subject = msg.Subject
	mail.Text = []byte(msg.Body)

	if msg.AttachmentPath != "" {
		if _, err := mail.AttachFile(msg.AttachmentPath); err != nil {
			return &SendError{Recipient: msg.To, Cause: fmt.Errorf("attaching %s: %w", msg.AttachmentPath, err)}
		}
	}

	if err := m.deliver(mail); err != nil {
		return &SendError{Recipient: msg.To, Cause: err}
	}
	return nil
}

func (m *SMTPMailer) deliver(mail *email.Email) error {
	auth := m.auth()

	var err error
	if m.implicitTLS {
		err = mail.SendWithTLS(m.addr, auth, &tls.Config{ServerName: m.host})
	} else {
		err = mail.Send(m.addr, auth)
	}

	// Some relays reject AUTH entirely; retry without credentials
	if err != nil && auth != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		if m.implicitTLS {
			return mail.SendWithTLS(m.addr, nil, &tls.Config{ServerName: m.host})
		}
		return mail.Send(m.addr, nil)
	}
	return err
}

func (m *SMTPMailer) auth() smtp.Auth {
	if m.user == "" || m.pass == "" {
		return nil
	}
	return smtp.PlainAuth("", m.user, m.pass, m.host)
}
