package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/gleaner"
)

// Compile-time interface verification.
var _ gleaner.SelectorStore = (*SelectorStore)(nil)

// SelectorStore implements gleaner.SelectorStore using SQLite. Each row
// holds the learned selector set for one domain.
type SelectorStore struct {
	db *DB
}

// NewSelectorStore creates a new SelectorStore.
func NewSelectorStore(db *DB) *SelectorStore {
	return &SelectorStore{db: db}
}

// LoadAll returns every persisted selector set keyed by domain.
func (s *SelectorStore) LoadAll(ctx context.Context) (map[string]gleaner.SelectorSet, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT domain, title, content, author, date, image, section
		FROM selector_sets
	`)
	if err != nil {
		return nil, fmt.Errorf("loading selector sets: %w", err)
	}
	defer rows.Close()

	sets := make(map[string]gleaner.SelectorSet)
	for rows.Next() {
		var domain string
		var set gleaner.SelectorSet
		if err := rows.Scan(&domain, &set.Title, &set.Content, &set.Author,
			&set.Date, &set.Image, &set.Section); err != nil {
			return nil, fmt.Errorf("scanning selector set: %w", err)
		}
		sets[domain] = set
	}

	return sets, rows.Err()
}

// SaveAll replaces the persisted selector sets with the given snapshot.
// The write is transactional: domains dropped from the snapshot are
// dropped from disk, and a failure leaves the previous state intact.
func (s *SelectorStore) SaveAll(ctx context.Context, sets map[string]gleaner.SelectorSet) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM selector_sets"); err != nil {
		return fmt.Errorf("clearing selector sets: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for domain, set := range sets {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO selector_sets (domain, title, content, author, date, image, section, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, domain, set.Title, set.Content, set.Author, set.Date, set.Image, set.Section, now)
		if err != nil {
			return fmt.Errorf("saving selector set for %s: %w", domain, err)
		}
	}

	return tx.Commit()
}
