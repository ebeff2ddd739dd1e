package rdb

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/hostmaint/hostmaint/domain"
	"github.com/hostmaint/hostmaint/domain/model"
)

type RunRepository struct{ db *gorm.DB }

func NewRunRepository(db *gorm.DB) *RunRepository { return &RunRepository{db: db} }

func runToRecord(r *model.Run) *RunRecord {
	rec := &RunRecord{
		ID:         r.ID,
		Task:       r.Task,
		Host:       r.Host,
		DryRun:     r.DryRun,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		Error:      r.Error,
	}
	for i, e := range r.Entries {
		rec.Entries = append(rec.Entries, EntryRecord{
			RunID:    r.ID,
			Seq:      i,
			Category: string(e.Category),
			Subject:  e.Subject,
			Detail:   e.Detail,
		})
	}
	return rec
}

func runToModel(rec *RunRecord) *model.Run {
	r := &model.Run{
		ID:         rec.ID,
		Task:       rec.Task,
		Host:       rec.Host,
		DryRun:     rec.DryRun,
		StartedAt:  rec.StartedAt,
		FinishedAt: rec.FinishedAt,
		Error:      rec.Error,
		Entries:    make([]model.ReportEntry, 0, len(rec.Entries)),
	}
	for _, e := range rec.Entries {
		r.Entries = append(r.Entries, model.ReportEntry{
			Category: model.Category(e.Category),
			Subject:  e.Subject,
			Detail:   e.Detail,
		})
	}
	return r
}

func orderedEntries(db *gorm.DB) *gorm.DB { return db.Order("seq ASC") }

// Save inserts or replaces a run together with its entries.
func (r *RunRepository) Save(ctx context.Context, run *model.Run) error {
	if run == nil || run.ID == "" {
		return fmt.Errorf("run id is required")
	}
	rec := runToRecord(run)
	entries := rec.Entries
	rec.Entries = nil
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(rec).Error; err != nil {
			return err
		}
		if err := tx.Where("run_id = ?", rec.ID).Delete(&EntryRecord{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.Create(&entries).Error
	})
}

func (r *RunRepository) Get(ctx context.Context, id string) (*model.Run, error) {
	var rec RunRecord
	if err := r.db.WithContext(ctx).Preload("Entries", orderedEntries).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrRunNotFound
		}
		return nil, err
	}
	return runToModel(&rec), nil
}

func (r *RunRepository) List(ctx context.Context, filter model.RunFilter) ([]*model.Run, error) {
	q := r.db.WithContext(ctx).Preload("Entries", orderedEntries).Order("started_at DESC").Order("id DESC")
	if filter.Task != "" {
		q = q.Where("task = ?", filter.Task)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	var recs []RunRecord
	if err := q.Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]*model.Run, 0, len(recs))
	for i := range recs {
		out = append(out, runToModel(&recs[i]))
	}
	return out, nil
}

var _ domain.RunRepository = (*RunRepository)(nil)
