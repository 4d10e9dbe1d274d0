// Package mail delivers site email over SMTP. Transport failures never
// propagate past this boundary; callers only see a boolean outcome.
package mail

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"mime/multipart"
	"mime/quotedprintable"
	"net"
	"net/smtp"
	"net/textproto"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/digitalget/services-site/internal/core/ports"
	"github.com/digitalget/services-site/internal/infrastructure/config"
)

const sendTimeout = 8 * time.Second

// SMTPMailer implements ports.Mailer against a configured SMTP host. When
// mail is disabled or no host is configured, Send reports success without
// sending; that is an environment-driven no-op, not an error.
type SMTPMailer struct {
	cfg    config.MailConfig
	logger zerolog.Logger
}

var _ ports.Mailer = (*SMTPMailer)(nil)

func NewSMTPMailer(cfg config.MailConfig, logger zerolog.Logger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, logger: logger}
}

func (m *SMTPMailer) Send(to, subject, textBody, htmlBody, replyTo string) bool {
	if !m.cfg.Enabled || m.cfg.Host == "" {
		return true
	}

	msg, err := buildMessage(m.cfg.From, to, subject, textBody, htmlBody, replyTo)
	if err != nil {
		m.logger.Error().Err(err).Msg("failed to build mail message")
		return false
	}

	if err := m.transmit(to, msg); err != nil {
		m.logger.Warn().Err(err).Str("to", to).Msg("mail send failed")
		return false
	}
	return true
}

// transmit handles the SMTP conversation. Implicit SSL and STARTTLS are
// mutually exclusive: an SSL connection is already encrypted and never
// upgraded.
func (m *SMTPMailer) transmit(to string, msg []byte) error {
	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))

	conn, err := net.DialTimeout("tcp", addr, sendTimeout)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	_ = conn.SetDeadline(time.Now().Add(sendTimeout))

	if m.cfg.UseSSL {
		conn = tls.Client(conn, &tls.Config{ServerName: m.cfg.Host})
	}

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	if m.cfg.UseTLS && !m.cfg.UseSSL {
		if err := client.StartTLS(&tls.Config{ServerName: m.cfg.Host}); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}
	if m.cfg.Username != "" {
		auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("auth: %w", err)
		}
	}

	if err := client.Mail(m.cfg.From); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("rcpt to: %w", err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return fmt.Errorf("write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close body: %w", err)
	}
	return client.Quit()
}

// buildMessage assembles a multipart/alternative message carrying the plain
// body first and the HTML body second.
func buildMessage(from, to, subject, textBody, htmlBody, replyTo string) ([]byte, error) {
	var buf bytes.Buffer
	alt := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	if replyTo != "" {
		fmt.Fprintf(&buf, "Reply-To: %s\r\n", replyTo)
	}
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%q\r\n", alt.Boundary())
	buf.WriteString("\r\n")

	for _, part := range []struct {
		contentType string
		body        string
	}{
		{"text/plain; charset=utf-8", textBody},
		{"text/html; charset=utf-8", htmlBody},
	} {
		header := textproto.MIMEHeader{}
		header.Set("Content-Type", part.contentType)
		header.Set("Content-Transfer-Encoding", "quoted-printable")
		w, err := alt.CreatePart(header)
		if err != nil {
			return nil, err
		}
		qp := quotedprintable.NewWriter(w)
		if _, err := qp.Write([]byte(part.body)); err != nil {
			return nil, err
		}
		if err := qp.Close(); err != nil {
			return nil, err
		}
	}
	if err := alt.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
