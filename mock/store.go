package mock

import (
	"context"

	"github.com/fwojciec/gleaner"
)

var _ gleaner.EntityStore = (*EntityStore)(nil)

// EntityStore is a mock implementation of gleaner.EntityStore.
type EntityStore struct {
	SaveFn   func(ctx context.Context, outcome *gleaner.Outcome) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *EntityStore) Save(ctx context.Context, outcome *gleaner.Outcome) error {
	return s.SaveFn(ctx, outcome)
}

func (s *EntityStore) Commit() error {
	return s.CommitFn()
}

func (s *EntityStore) Abort() error {
	return s.AbortFn()
}

var _ gleaner.SelectorStore = (*SelectorStore)(nil)

// SelectorStore is a mock implementation of gleaner.SelectorStore.
type SelectorStore struct {
	LoadAllFn func(ctx context.Context) (map[string]gleaner.SelectorSet, error)
	SaveAllFn func(ctx context.Context, sets map[string]gleaner.SelectorSet) error
}

func (s *SelectorStore) LoadAll(ctx context.Context) (map[string]gleaner.SelectorSet, error) {
	return s.LoadAllFn(ctx)
}

func (s *SelectorStore) SaveAll(ctx context.Context, sets map[string]gleaner.SelectorSet) error {
	return s.SaveAllFn(ctx, sets)
}
