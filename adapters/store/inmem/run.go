package inmem

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/hostmaint/hostmaint/domain/model"
)

// RunRepository is a thread-safe in-memory implementation.
type RunRepository struct {
	mu    sync.RWMutex
	items map[string]*model.Run
}

func NewRunRepository() *RunRepository {
	return &RunRepository{items: make(map[string]*model.Run)}
}

func copyRun(r *model.Run) *model.Run {
	cp := *r
	cp.Entries = append([]model.ReportEntry(nil), r.Entries...)
	return &cp
}

func (r *RunRepository) Save(_ context.Context, run *model.Run) error {
	if run == nil || run.ID == "" {
		return fmt.Errorf("run id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[run.ID] = copyRun(run)
	return nil
}

func (r *RunRepository) Get(_ context.Context, id string) (*model.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[id]
	if !ok {
		return nil, model.ErrRunNotFound
	}
	return copyRun(v), nil
}

func (r *RunRepository) List(_ context.Context, filter model.RunFilter) ([]*model.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Run, 0, len(r.items))
	for _, v := range r.items {
		if filter.Task != "" && v.Task != filter.Task {
			continue
		}
		out = append(out, copyRun(v))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].StartedAt.After(out[j].StartedAt)
		}
		return out[i].ID > out[j].ID
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}
