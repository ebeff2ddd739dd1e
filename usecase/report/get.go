package report

import (
	"context"
	"fmt"

	"github.com/hostmaint/hostmaint/domain/model"
)

// GetInput identifies a stored run.
type GetInput struct {
	ID string `json:"id"`
}

// GetOutput wraps the stored run.
type GetOutput struct {
	Run *model.Run `json:"run"`
}

// Get returns the run identified by ID.
func (u *UseCase) Get(ctx context.Context, in *GetInput) (*GetOutput, error) {
	if in == nil || in.ID == "" {
		return nil, fmt.Errorf("run id is required")
	}
	r, err := u.Repos.Run.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Run: r}, nil
}
