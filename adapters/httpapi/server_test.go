package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hostmaint/hostmaint/adapters/store/inmem"
	"github.com/hostmaint/hostmaint/domain/model"
	"github.com/hostmaint/hostmaint/usecase/report"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	repo := inmem.NewRunRepository()
	base := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)
	for i, task := range []string{"locrem", "terminate", "locrem"} {
		run := &model.Run{
			ID:         "run-" + string(rune('a'+i)),
			Task:       task,
			Host:       "web1",
			StartedAt:  base.Add(time.Duration(i) * time.Hour),
			FinishedAt: base.Add(time.Duration(i)*time.Hour + time.Second),
			Entries:    []model.ReportEntry{{Category: model.CategoryOK, Subject: "example.com", Detail: "configured OK"}},
		}
		if err := repo.Save(context.Background(), run); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	uc := &report.UseCase{Repos: &report.Repos{Run: repo}}
	return NewServer(uc, nil).Handler()
}

func do(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealth(t *testing.T) {
	w := do(t, newTestServer(t), "/healthz")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ok"`) {
		t.Errorf("healthz = %d %s", w.Code, w.Body.String())
	}
}

func TestListRuns(t *testing.T) {
	h := newTestServer(t)
	tests := []struct {
		name   string
		path   string
		status int
		ids    []string
	}{
		{"all newest first", "/v1/runs", http.StatusOK, []string{"run-c", "run-b", "run-a"}},
		{"by task", "/v1/runs?task=locrem", http.StatusOK, []string{"run-c", "run-a"}},
		{"limit", "/v1/runs?limit=1", http.StatusOK, []string{"run-c"}},
		{"bad limit", "/v1/runs?limit=-2", http.StatusBadRequest, nil},
		{"non numeric limit", "/v1/runs?limit=x", http.StatusBadRequest, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, tt.path)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.status, w.Body.String())
			}
			if tt.status != http.StatusOK {
				return
			}
			var out report.ListOutput
			if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(out.Runs) != len(tt.ids) {
				t.Fatalf("runs = %d, want %d", len(out.Runs), len(tt.ids))
			}
			for i, id := range tt.ids {
				if out.Runs[i].ID != id {
					t.Errorf("runs[%d] = %s, want %s", i, out.Runs[i].ID, id)
				}
			}
		})
	}
}

func TestGetRun(t *testing.T) {
	h := newTestServer(t)

	w := do(t, h, "/v1/runs/run-b")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var run model.Run
	if err := json.Unmarshal(w.Body.Bytes(), &run); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if run.Task != "terminate" || len(run.Entries) != 1 {
		t.Errorf("run = %+v", run)
	}

	if w := do(t, h, "/v1/runs/missing"); w.Code != http.StatusNotFound {
		t.Errorf("missing status = %d, want 404", w.Code)
	}

	w = do(t, h, "/v1/runs/run-a/report")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "configured OK") {
		t.Errorf("report = %d %s", w.Code, w.Body.String())
	}
}

func TestGzipResponse(t *testing.T) {
	h := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/v1/runs/run-a/report", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := w.Header().Get("Content-Encoding"); got != "gzip" {
		t.Errorf("Content-Encoding = %q, want gzip", got)
	}
}
