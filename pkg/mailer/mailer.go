// Package mailer sends transactional mail over SMTP. Sending is always
// best-effort: callers log failures and continue, a committed row is never
// rolled back because mail could not be delivered.
package mailer

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/inkerrobotics/luckydraw-admin/pkg/config"
)

// Mailer delivers mail through the configured SMTP relay.
type Mailer struct {
	cfg *config.SMTPConfig
}

// NewMailer creates a Mailer from SMTP configuration.
func NewMailer(cfg *config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// Enabled reports whether an SMTP host is configured.
func (m *Mailer) Enabled() bool {
	return m.cfg.Host != ""
}

// Send delivers a single HTML message. With SMTP_SECURE set the connection
// is opened over implicit TLS (port 465 style); otherwise plain SMTP with
// STARTTLS when the server offers it.
func (m *Mailer) Send(to, subject, htmlBody string) error {
	if !m.Enabled() {
		return fmt.Errorf("smtp is not configured")
	}

	msg := buildMessage(m.cfg.From, to, subject, htmlBody)
	addr := m.cfg.Host + ":" + m.cfg.Port

	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	}

	if m.cfg.Secure {
		return m.sendTLS(addr, auth, to, msg)
	}
	return smtp.SendMail(addr, auth, m.cfg.From, []string{to}, msg)
}

func (m *Mailer) sendTLS(addr string, auth smtp.Auth, to string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: m.cfg.Host})
	if err != nil {
		return err
	}

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		return err
	}
	defer client.Close()

	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return err
		}
	}
	if err := client.Mail(m.cfg.From); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func buildMessage(from, to, subject, htmlBody string) []byte {
	var msg strings.Builder
	msg.WriteString("From: " + from + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)
	return []byte(msg.String())
}

// SendTemporaryCredentials mails login credentials to a newly created user.
func (m *Mailer) SendTemporaryCredentials(to, name, password string) error {
	body := fmt.Sprintf(`<html><body>
<p>Hello %s,</p>
<p>An administrator created an account for you on the Lucky Draw admin console.</p>
<p>Email: <b>%s</b><br>Temporary password: <b>%s</b></p>
<p>Please sign in and change your password.</p>
</body></html>`, name, to, password)

	return m.Send(to, "Your Lucky Draw admin account", body)
}
