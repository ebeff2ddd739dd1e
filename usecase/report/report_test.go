package report

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hostmaint/hostmaint/adapters/store/inmem"
	"github.com/hostmaint/hostmaint/domain/model"
)

type mockMailer struct {
	sendFunc func(ctx context.Context, msg model.MailMessage) error
	sent     []model.MailMessage
}

func (m *mockMailer) Send(ctx context.Context, msg model.MailMessage) error {
	m.sent = append(m.sent, msg)
	if m.sendFunc != nil {
		return m.sendFunc(ctx, msg)
	}
	return nil
}

func fixedClock(ts ...time.Time) func() time.Time {
	i := 0
	return func() time.Time {
		t := ts[i]
		if i < len(ts)-1 {
			i++
		}
		return t
	}
}

func TestRecorder(t *testing.T) {
	start := time.Date(2024, 5, 1, 3, 0, 0, 0, time.UTC)
	rec := newRecorder("locrem", "srv1", true, fixedClock(start, start.Add(2*time.Second)))
	if len(rec.ID()) != 26 {
		t.Errorf("expected a ULID, got %q", rec.ID())
	}
	rec.Add(model.CategoryLocal, "a.tld", "")
	rec.Addf(model.CategoryCheck, "b.tld", "reason %d", 1)
	rec.Fail(nil)
	run := rec.Finish()

	if run.Task != "locrem" || run.Host != "srv1" || !run.DryRun {
		t.Errorf("unexpected run header: %+v", run)
	}
	if run.Failed() {
		t.Errorf("Fail(nil) must not mark the run failed")
	}
	if len(run.Entries) != 2 || run.Entries[1].Detail != "reason 1" {
		t.Errorf("unexpected entries: %+v", run.Entries)
	}
	if got := run.FinishedAt.Sub(run.StartedAt); got != 2*time.Second {
		t.Errorf("duration = %s", got)
	}
}

func TestRender(t *testing.T) {
	start := time.Date(2024, 5, 1, 3, 0, 0, 0, time.UTC)
	run := &model.Run{
		ID: "01HX", Task: "terminate", Host: "srv1", DryRun: true,
		StartedAt: start, FinishedAt: start.Add(1500 * time.Millisecond),
		Entries: []model.ReportEntry{
			{Category: model.CategoryTerminate, Subject: "u1", Detail: "Domain: a.tld\nNS: none"},
			{Category: model.CategorySkip, Subject: "u2"},
			{Category: model.CategoryTerminate, Subject: "u3"},
		},
	}
	out := Render(run)
	for _, want := range []string{
		"terminate report for server srv1\n",
		"DRY RUN",
		"TERMINATE (2)\n  u1\n" + detailIndent + "Domain: a.tld\n" + detailIndent + "NS: none\n  u3\n",
		"SKIP (1)\n  u2\n",
		"Execution took: 1.5s",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered report missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "TERMINATE (2)") > strings.Index(out, "SKIP (1)") {
		t.Errorf("groups must keep first-appearance order")
	}
}

func TestSubject(t *testing.T) {
	run := &model.Run{Task: "dnsfix", Host: "srv1"}
	if got := Subject(run); got != "dnsfix report for server srv1" {
		t.Errorf("Subject() = %q", got)
	}
	run.Error = "inventory unavailable"
	if got := Subject(run); got != "ERROR: dnsfix report for server srv1" {
		t.Errorf("Subject() = %q", got)
	}
}

func TestPublish(t *testing.T) {
	ctx := context.Background()
	store := inmem.NewStore()
	mailer := &mockMailer{}
	uc := &UseCase{Repos: &Repos{Run: store.RunRepo}, Mailer: mailer}

	run := &model.Run{ID: "01HX", Task: "locrem", Host: "srv1", StartedAt: time.Now()}
	var log bytes.Buffer
	out, err := uc.Publish(ctx, &PublishInput{Run: run, Log: &log, SendMail: true, MailFrom: "root@srv1", MailTo: []string{"ops@example.com"}})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if !out.Mailed || !out.Saved {
		t.Errorf("expected mailed and saved: %+v", out)
	}
	if log.String() != out.Text {
		t.Errorf("log must receive the rendered report")
	}
	if len(mailer.sent) != 1 || mailer.sent[0].Subject != "locrem report for server srv1" || mailer.sent[0].From != "root@srv1" {
		t.Errorf("unexpected mail: %+v", mailer.sent)
	}

	got, err := uc.Get(ctx, &GetInput{ID: "01HX"})
	if err != nil || got.Run.Task != "locrem" {
		t.Fatalf("Get: %v %+v", err, got)
	}
	list, err := uc.List(ctx, &ListInput{Task: "locrem"})
	if err != nil || len(list.Runs) != 1 {
		t.Fatalf("List: %v %+v", err, list)
	}
}

func TestPublish_MailFailureStillSaves(t *testing.T) {
	ctx := context.Background()
	store := inmem.NewStore()
	mailer := &mockMailer{sendFunc: func(context.Context, model.MailMessage) error { return errors.New("smtp down") }}
	uc := &UseCase{Repos: &Repos{Run: store.RunRepo}, Mailer: mailer}

	out, err := uc.Publish(ctx, &PublishInput{Run: &model.Run{ID: "01HY", Task: "dnsfix"}, SendMail: true, MailTo: []string{"ops@example.com"}})
	if err == nil || !strings.Contains(err.Error(), "smtp down") {
		t.Fatalf("expected mail error, got %v", err)
	}
	if out.Mailed || !out.Saved {
		t.Errorf("unexpected output: %+v", out)
	}
}

func TestPublish_NoMailWhenDisabled(t *testing.T) {
	mailer := &mockMailer{}
	uc := &UseCase{Mailer: mailer}
	if _, err := uc.Publish(context.Background(), &PublishInput{Run: &model.Run{ID: "x"}, MailTo: []string{"ops@example.com"}}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(mailer.sent) != 0 {
		t.Errorf("mail must not be sent when SendMail is false")
	}
	if _, err := uc.Publish(context.Background(), nil); err == nil {
		t.Errorf("expected error for nil input")
	}
}
