package notification

import (
	"crypto/tls"
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/eventsynk/eventsynk-backend/config"
)

// EmailSender delivers individual messages over SMTP. When the transport has
// no usable credentials it degrades to a simulated send: the message is logged
// and reported as successful, so callers cannot tell the difference.
type EmailSender struct {
	Host     string
	Port     string
	Username string
	Password string
	FromName string
	FromAddr string
}

func NewEmailSender(cfg *config.Config) *EmailSender {
	fromAddr := cfg.SMTPFromEmail
	if fromAddr == "" {
		fromAddr = cfg.SMTPUsername
	}
	return &EmailSender{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		FromName: cfg.SMTPFromName,
		FromAddr: fromAddr,
	}
}

// Configured reports whether a real SMTP transport is available.
func (e *EmailSender) Configured() bool {
	return e.Host != "" && e.Username != "" && e.Password != ""
}

// Send delivers one individually addressed message with a plain text body and
// an HTML variant. In degraded mode the send is simulated and reported as
// successful.
func (e *EmailSender) Send(to, subject, body, html string) error {
	if !e.Configured() {
		log.Printf("📧 [SIMULATED EMAIL] To: %s | Subject: %s | Body: %s", to, subject, previewBody(body))
		return nil
	}

	msg := e.buildMessage(to, subject, body, html)

	addr := fmt.Sprintf("%s:%s", e.Host, e.Port)
	if err := e.sendMailWithTLS(addr, to, msg); err != nil {
		log.Printf("❌ Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("✅ Email sent to %s: %s", to, subject)
	return nil
}

// previewBody shortens a body for log lines, cutting on a rune boundary.
func previewBody(body string) string {
	runes := []rune(body)
	if len(runes) <= 100 {
		return body
	}
	return string(runes[:100]) + "..."
}

// SendBulk sends the templated message to every (address, name) pair, with
// {name} substituted per recipient. One failure does not abort the rest.
func (e *EmailSender) SendBulk(recipients []Participant, subject, bodyTemplate, htmlTemplate string) (success, failed int) {
	for _, r := range recipients {
		name := r.Name
		if name == "" {
			name = "User"
		}
		body := strings.ReplaceAll(bodyTemplate, "{name}", name)
		html := ""
		if htmlTemplate != "" {
			html = strings.ReplaceAll(htmlTemplate, "{name}", name)
		}

		if err := e.Send(r.Email, subject, body, html); err != nil {
			failed++
		} else {
			success++
		}
	}
	return success, failed
}

// buildMessage assembles a multipart/alternative MIME message carrying the
// plain text body and its HTML variant.
func (e *EmailSender) buildMessage(to, subject, body, html string) []byte {
	from := e.FromAddr
	if e.FromName != "" {
		from = fmt.Sprintf("%s <%s>", e.FromName, e.FromAddr)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("From: %s\r\n", from))
	b.WriteString(fmt.Sprintf("To: %s\r\n", to))
	b.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	b.WriteString("MIME-Version: 1.0\r\n")

	if html == "" {
		b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
		b.WriteString(body)
		return []byte(b.String())
	}

	const boundary = "eventsynk-alt-boundary"
	b.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary))

	b.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")

	b.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	b.WriteString(html)
	b.WriteString("\r\n")

	b.WriteString(fmt.Sprintf("--%s--\r\n", boundary))
	return []byte(b.String())
}

func (e *EmailSender) sendMailWithTLS(addr, to string, message []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to dial SMTP server: %w", err)
	}
	defer client.Close()

	tlsConfig := &tls.Config{
		ServerName: e.Host,
	}
	if err = client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	auth := smtp.PlainAuth("", e.Username, e.Password, e.Host)
	if err = client.Auth(auth); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	if err = client.Mail(e.FromAddr); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err = client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient %s: %w", to, err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = w.Write(message); err != nil {
		w.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %w", err)
	}

	return client.Quit()
}
