package mailer

import (
	"context"
	"errors"
	"net/smtp"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/hostmaint/hostmaint/domain/model"
)

func TestSMTPMailer_Send(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	var gotAuth smtp.Auth
	m := NewSMTPMailer(Config{Host: "relay.example.com", Port: 587, Username: "u", Password: "p"})
	m.now = func() time.Time { return time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC) }
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotAuth, gotFrom, gotTo, gotMsg = addr, a, from, to, msg
		return nil
	}

	err := m.Send(context.Background(), model.MailMessage{
		From:    "hostmaint@example.com",
		To:      []string{"ops@example.com", "noc@example.com"},
		Subject: "terminate report for server web1",
		Body:    "line one\nline two\n",
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if gotAddr != "relay.example.com:587" || gotAuth == nil || gotFrom != "hostmaint@example.com" || len(gotTo) != 2 {
		t.Errorf("send args = %q %v %q %v", gotAddr, gotAuth, gotFrom, gotTo)
	}
	msg := string(gotMsg)
	for _, want := range []string{
		"From: hostmaint@example.com\r\n",
		"To: ops@example.com, noc@example.com\r\n",
		"Subject: terminate report for server web1\r\n",
		"Date: Fri, 10 May 2024 08:00:00 +0000\r\n",
		"\r\n\r\nline one\r\nline two\r\n",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
	if !regexp.MustCompile(`Message-ID: <[0-9a-f-]{36}@example\.com>\r\n`).MatchString(msg) {
		t.Errorf("bad Message-ID:\n%s", msg)
	}
}

func TestSMTPMailer_Errors(t *testing.T) {
	m := NewSMTPMailer(Config{})
	boom := errors.New("connection refused")
	m.send = func(string, smtp.Auth, string, []string, []byte) error { return boom }

	if err := m.Send(context.Background(), model.MailMessage{From: "a@example.com"}); err == nil {
		t.Error("expected error without recipients")
	}
	err := m.Send(context.Background(), model.MailMessage{From: "a@example.com", To: []string{"b@example.com"}})
	if !errors.Is(err, boom) || !strings.Contains(err.Error(), "localhost:25") {
		t.Errorf("err = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := m.Send(ctx, model.MailMessage{From: "a@example.com", To: []string{"b@example.com"}}); !errors.Is(err, context.Canceled) {
		t.Errorf("canceled err = %v", err)
	}
}
