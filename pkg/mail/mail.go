// Package mail sends email over SMTP through a small fluent builder:
//
//	mailer.To("user@example.com").
//	    Subject("Order #42 received").
//	    Body("<p>Thanks!</p>").
//	    Send()
package mail

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTP holds server credentials and the sender identity.
type SMTP struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	FromName string
}

// Mailer binds messages to one SMTP configuration.
type Mailer struct {
	cfg SMTP
}

func New(cfg SMTP) *Mailer {
	if cfg.FromName == "" {
		cfg.FromName = "Showroom"
	}
	return &Mailer{cfg: cfg}
}

// Message accumulates one email before Send.
type Message struct {
	mailer  *Mailer
	to      []string
	cc      []string
	subject string
	body    string
	html    bool
}

// To opens a message addressed to the given recipients. The body defaults
// to HTML.
func (m *Mailer) To(addresses ...string) *Message {
	return &Message{mailer: m, to: addresses, html: true}
}

func (msg *Message) CC(addresses ...string) *Message {
	msg.cc = append(msg.cc, addresses...)
	return msg
}

func (msg *Message) Subject(s string) *Message {
	msg.subject = s
	return msg
}

// Body sets an HTML body.
func (msg *Message) Body(html string) *Message {
	msg.body = html
	msg.html = true
	return msg
}

// Text sets a plain-text body.
func (msg *Message) Text(text string) *Message {
	msg.body = text
	msg.html = false
	return msg
}

// Send delivers the message. Port 465 gets implicit TLS; anything else goes
// through net/smtp's STARTTLS-capable SendMail.
func (msg *Message) Send() error {
	cfg := msg.mailer.cfg
	if cfg.Host == "" {
		return fmt.Errorf("mail: MAIL_HOST not configured")
	}

	recipients := append(append([]string{}, msg.to...), msg.cc...)
	payload := msg.render(fmt.Sprintf("%s <%s>", cfg.FromName, cfg.From))
	addr := cfg.Host + ":" + cfg.Port
	auth := smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)

	if cfg.Port == "465" {
		return sendImplicitTLS(addr, cfg.Host, auth, cfg.From, recipients, payload)
	}
	return smtp.SendMail(addr, auth, cfg.From, recipients, payload)
}

func sendImplicitTLS(addr, host string, auth smtp.Auth, from string, to []string, payload []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		return fmt.Errorf("mail: TLS dial: %w", err)
	}
	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer client.Quit()

	if err := client.Auth(auth); err != nil {
		return err
	}
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(payload); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func (msg *Message) render(from string) []byte {
	contentType := "text/plain"
	if msg.html {
		contentType = "text/html"
	}

	headers := []string{
		"From: " + from,
		"To: " + strings.Join(msg.to, ", "),
	}
	if len(msg.cc) > 0 {
		headers = append(headers, "Cc: "+strings.Join(msg.cc, ", "))
	}
	headers = append(headers,
		"Subject: "+msg.subject,
		"MIME-Version: 1.0",
		fmt.Sprintf("Content-Type: %s; charset=\"UTF-8\"", contentType),
	)

	return []byte(strings.Join(headers, "\r\n") + "\r\n\r\n" + msg.body)
}
