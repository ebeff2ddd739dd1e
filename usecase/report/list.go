package report

import (
	"context"
	"fmt"

	"github.com/hostmaint/hostmaint/domain/model"
)

// ListInput filters the run history.
type ListInput struct {
	Task  string `json:"task,omitempty"`
	Limit int    `json:"limit,omitempty"`
}

// ListOutput holds runs newest first.
type ListOutput struct {
	Runs []*model.Run `json:"runs"`
}

// List returns stored runs.
func (u *UseCase) List(ctx context.Context, in *ListInput) (*ListOutput, error) {
	if in == nil {
		in = &ListInput{}
	}
	if in.Limit < 0 {
		return nil, fmt.Errorf("limit must not be negative")
	}
	runs, err := u.Repos.Run.List(ctx, model.RunFilter{Task: in.Task, Limit: in.Limit})
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return &ListOutput{Runs: runs}, nil
}
