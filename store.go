package gleaner

import "context"

// EntityStore persists extraction outcomes with atomic semantics.
// Save writes to a temporary location; Commit makes all saved outcomes
// visible at once; Abort discards pending changes.
type EntityStore interface {
	Save(ctx context.Context, outcome *Outcome) error
	Commit() error
	Abort() error
}

// SelectorStore loads and saves learned selector sets at the process
// boundary. It backs a SelectorCache across runs without changing the
// cache's in-memory contract: implementations are consulted only on
// startup and shutdown, never on the extraction path.
type SelectorStore interface {
	LoadAll(ctx context.Context) (map[string]SelectorSet, error)
	SaveAll(ctx context.Context, sets map[string]SelectorSet) error
}
