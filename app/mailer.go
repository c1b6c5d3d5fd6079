package app

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"os"
	"strings"
	"time"
)

// Mailer sends the account lifecycle mails. Kept as an interface so tests
// can capture outgoing mail instead of talking to an SMTP server.
type Mailer interface {
	SendVerification(to, username, token string) error
	SendPasswordReset(to, username, token string) error
}

type smtpMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
	baseURL  string
	timeout  time.Duration
}

func NewSMTPMailer() Mailer {
	return &smtpMailer{
		host:     os.Getenv("SMTP_HOST"),
		port:     os.Getenv("SMTP_PORT"),
		username: os.Getenv("SMTP_USER"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     os.Getenv("SMTP_FROM"),
		baseURL:  os.Getenv("BASE_URL"),
		timeout:  30 * time.Second,
	}
}

func (m *smtpMailer) SendVerification(to, username, token string) error {
	link := fmt.Sprintf("%s/verify-email/%s", m.baseURL, token)
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nWelcome to VibeFlo. Confirm your email address by opening the link below:\r\n\r\n%s\r\n\r\nThe link is valid for 24 hours.\r\n",
		username, link,
	)

	return m.send(to, "Verify your VibeFlo account", body)
}

func (m *smtpMailer) SendPasswordReset(to, username, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", m.baseURL, token)
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nA password reset was requested for your VibeFlo account. Open the link below to set a new password:\r\n\r\n%s\r\n\r\nThe link is valid for 1 hour and can be used once. If you did not request this, ignore this mail.\r\n",
		username, link,
	)

	return m.send(to, "Reset your VibeFlo password", body)
}

func (m *smtpMailer) send(to, subject, body string) error {
	addr := net.JoinHostPort(m.host, m.port)

	conn, err := net.DialTimeout("tcp", addr, m.timeout)
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}

	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp client: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: m.host}); err != nil {
			return fmt.Errorf("smtp starttls: %w", err)
		}
	}

	if m.username != "" {
		auth := smtp.PlainAuth("", m.username, m.password, m.host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := client.Mail(m.from); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}

	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}

	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")

	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close data: %w", err)
	}

	return client.Quit()
}
