package inmem

import "github.com/hostmaint/hostmaint/domain"

// Store provides a unified interface for all in-memory repositories.
type Store struct {
	RunRepo *RunRepository
}

// NewStore creates a new in-memory store with all repositories.
func NewStore() *Store {
	return &Store{
		RunRepo: NewRunRepository(),
	}
}

// Compile-time assertions
var _ domain.RunRepository = (*RunRepository)(nil)
