package rdb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hostmaint/hostmaint/domain/model"
)

func newTestRepo(t *testing.T) *RunRepository {
	t.Helper()
	db, err := OpenFromURL("sqlite::memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewRunRepository(db)
}

func TestRunRepository_SaveGet(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	started := time.Date(2024, 5, 1, 3, 0, 0, 0, time.UTC)

	run := &model.Run{
		ID:         "01HX0000000000000000000001",
		Task:       "dnsfix",
		Host:       "srv1.example.net",
		DryRun:     true,
		StartedAt:  started,
		FinishedAt: started.Add(90 * time.Second),
		Entries: []model.ReportEntry{
			{Category: model.CategoryZoneEdit, Subject: "a.tld", Detail: "line 9: MX"},
			{Category: model.CategoryZoneOK, Subject: "b.tld"},
			{Category: model.CategoryZoneSkip, Subject: "c.tld", Detail: "not ours"},
		},
	}
	if err := repo.Save(ctx, run); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.Get(ctx, run.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Task != "dnsfix" || !got.DryRun || got.Host != run.Host {
		t.Errorf("unexpected run: %+v", got)
	}
	if len(got.Entries) != 3 || got.Entries[0].Subject != "a.tld" || got.Entries[2].Category != model.CategoryZoneSkip {
		t.Errorf("entries not preserved in order: %+v", got.Entries)
	}

	run.Error = "boom"
	run.Entries = run.Entries[:1]
	if err := repo.Save(ctx, run); err != nil {
		t.Fatalf("re-Save: %v", err)
	}
	got, _ = repo.Get(ctx, run.ID)
	if got.Error != "boom" || len(got.Entries) != 1 {
		t.Errorf("re-save must replace run and entries: %+v", got)
	}

	if _, err := repo.Get(ctx, "nope"); !errors.Is(err, model.ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestRunRepository_List(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	base := time.Date(2024, 5, 1, 3, 0, 0, 0, time.UTC)

	for i, task := range []string{"locrem", "terminate", "locrem"} {
		r := &model.Run{ID: string(rune('A' + i)), Task: task, StartedAt: base.Add(time.Duration(i) * time.Hour), FinishedAt: base.Add(time.Duration(i) * time.Hour)}
		if err := repo.Save(ctx, r); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	all, err := repo.List(ctx, model.RunFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 || all[0].ID != "C" || all[2].ID != "A" {
		t.Errorf("List order wrong")
	}

	locrem, _ := repo.List(ctx, model.RunFilter{Task: "locrem", Limit: 1})
	if len(locrem) != 1 || locrem[0].ID != "C" {
		t.Errorf("filtered List wrong: %+v", locrem)
	}
}

func TestOpenFromURL_Unsupported(t *testing.T) {
	if _, err := OpenFromURL("mysql://x"); err == nil {
		t.Fatalf("expected error for unsupported scheme")
	}
}
