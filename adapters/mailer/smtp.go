// Package mailer delivers report mails over SMTP.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hostmaint/hostmaint/domain/model"
	"github.com/hostmaint/hostmaint/internal/logging"
)

// Config is the SMTP relay configuration. Username enables PLAIN auth.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer implements model.MailerPort.
type SMTPMailer struct {
	cfg  Config
	send sendFunc
	now  func() time.Time
}

var _ model.MailerPort = (*SMTPMailer)(nil)

// NewSMTPMailer returns a mailer for cfg. Host defaults to localhost and
// Port to 25.
func NewSMTPMailer(cfg Config) *SMTPMailer {
	if cfg.Host == "" {
		cfg.Host = "localhost"
	}
	if cfg.Port == 0 {
		cfg.Port = 25
	}
	return &SMTPMailer{cfg: cfg, send: smtp.SendMail, now: time.Now}
}

// Send delivers msg. The context only bounds the call when it is already done.
func (m *SMTPMailer) Send(ctx context.Context, msg model.MailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if msg.From == "" || len(msg.To) == 0 {
		return errors.New("mail requires a sender and at least one recipient")
	}
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))
	body := m.build(msg)
	logging.FromContext(ctx).Info(ctx, "sending report mail", "to", strings.Join(msg.To, ","), "subject", msg.Subject, "relay", addr)
	if err := m.send(addr, auth, msg.From, msg.To, body); err != nil {
		return fmt.Errorf("send mail via %s: %w", addr, err)
	}
	return nil
}

func (m *SMTPMailer) build(msg model.MailMessage) []byte {
	now := m.now()
	domain := "localhost"
	if _, d, ok := strings.Cut(msg.From, "@"); ok && d != "" {
		domain = strings.Trim(d, "> ")
	}
	var b strings.Builder
	header := func(k, v string) { fmt.Fprintf(&b, "%s: %s\r\n", k, v) }
	header("From", msg.From)
	header("To", strings.Join(msg.To, ", "))
	header("Subject", msg.Subject)
	header("Date", now.Format(time.RFC1123Z))
	header("Message-ID", fmt.Sprintf("<%s@%s>", uuid.New().String(), domain))
	header("MIME-Version", "1.0")
	header("Content-Type", `text/plain; charset="UTF-8"`)
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(strings.ReplaceAll(msg.Body, "\r\n", "\n"), "\n", "\r\n"))
	return []byte(b.String())
}
