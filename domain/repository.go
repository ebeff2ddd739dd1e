package domain

import (
	"context"

	"github.com/hostmaint/hostmaint/domain/model"
)

// RunRepository stores finished task runs. List returns runs newest first.
type RunRepository interface {
	Save(ctx context.Context, r *model.Run) error
	Get(ctx context.Context, id string) (*model.Run, error)
	List(ctx context.Context, filter model.RunFilter) ([]*model.Run, error)
}
