// Package fs provides file-based storage for extracted entities.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/gleaner"
)

// Ensure EntityStore implements gleaner.EntityStore at compile time.
var _ gleaner.EntityStore = (*EntityStore)(nil)

// EntityStore implements gleaner.EntityStore with atomic update
// semantics. Outcomes are saved to a temporary directory, then moved
// atomically on Commit, so readers never observe a half-written batch.
type EntityStore struct {
	baseDir string
	name    string
}

// NewEntityStore creates a new EntityStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on
// Commit.
func NewEntityStore(baseDir, name string) *EntityStore {
	return &EntityStore{
		baseDir: baseDir,
		name:    name,
	}
}

// envelope is the on-disk form of one extraction outcome.
type envelope struct {
	EntityType  gleaner.EntityType `json:"entityType"`
	Provenance  gleaner.Provenance `json:"provenance"`
	ExtractedAt time.Time          `json:"extractedAt"`
	Entity      any                `json:"entity"`
}

func (s *EntityStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *EntityStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes the outcome to the temporary directory as
// <entityType>/<entityID>.json.
func (s *EntityStore) Save(ctx context.Context, outcome *gleaner.Outcome) error {
	if outcome == nil || outcome.Entity == nil {
		return gleaner.Errorf(gleaner.EINVALID, "outcome with entity required")
	}

	id := outcome.Entity.EntityID()
	if id == "" {
		return gleaner.Errorf(gleaner.EINVALID, "entity has no ID")
	}
	typ := string(outcome.Entity.EntityType())
	if typ == "" {
		return gleaner.Errorf(gleaner.EINVALID, "entity has no type")
	}

	// IDs are generated UUIDs and types come from a fixed list, but a
	// custom Entity implementation could smuggle separators in either.
	if unsafeSegment(id) || unsafeSegment(typ) {
		return gleaner.Errorf(gleaner.EINVALID, "path traversal in entity identity")
	}

	dir := filepath.Join(s.tempDir(), typ)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(envelope{
		EntityType:  outcome.Entity.EntityType(),
		Provenance:  outcome.Provenance,
		ExtractedAt: time.Now().UTC(),
		Entity:      outcome.Entity,
	}, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, id+".json"), data, 0644)
}

// unsafeSegment reports whether a path segment could escape its
// directory.
func unsafeSegment(s string) bool {
	return strings.Contains(s, "..") || strings.ContainsAny(s, `/\`)
}

// Commit atomically replaces the final directory with the temporary
// one. Committing with no saved outcomes produces an empty output
// directory.
func (s *EntityStore) Commit() error {
	if _, err := os.Stat(s.tempDir()); os.IsNotExist(err) {
		if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
			return err
		}
	}

	// Remove existing final directory if present
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}

	// Atomically rename temp to final
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards everything saved since the last Commit.
func (s *EntityStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
