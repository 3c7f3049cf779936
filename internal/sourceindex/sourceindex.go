// Package sourceindex persists the record of which source fed each (level, day) slot.
package sourceindex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/daily-reading/internal/types"
)

// FileName is the name of the JSON index written next to the level directories
const FileName = "daily-reading_source_index.json"

// Store loads and saves the source index
type Store interface {
	Load(ctx context.Context) ([]types.SourceIndexEntry, error)
	Save(ctx context.Context, entries []types.SourceIndexEntry) error
}

// Key identifies a slot
type Key struct {
	Level string
	Day   int
}

// ByKey indexes entries by (level, day). Later entries win.
func ByKey(entries []types.SourceIndexEntry) map[Key]types.SourceIndexEntry {
	out := make(map[Key]types.SourceIndexEntry, len(entries))
	for _, e := range entries {
		out[Key{Level: e.Level, Day: e.Day}] = e
	}
	return out
}

// FileStore keeps the index as an indented JSON array
type FileStore struct {
	Path string
}

// NewFileStore returns a FileStore writing FileName inside outDir
func NewFileStore(outDir string) *FileStore {
	return &FileStore{Path: filepath.Join(outDir, FileName)}
}

// Load reads the index. A missing or unreadable file yields an empty index.
func (s *FileStore) Load(_ context.Context) ([]types.SourceIndexEntry, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read source index: %w", err)
	}
	var entries []types.SourceIndexEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		// A corrupt index is rebuilt on the next save
		return nil, nil
	}
	return entries, nil
}

// Save writes the index, creating parent directories as needed
func (s *FileStore) Save(_ context.Context, entries []types.SourceIndexEntry) error {
	if entries == nil {
		entries = []types.SourceIndexEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal source index: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}
	if err := os.WriteFile(s.Path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write source index: %w", err)
	}
	return nil
}

// indexDB is the subset of *db.DB the Postgres store needs
type indexDB interface {
	ReplaceSourceIndex(ctx context.Context, entries []types.SourceIndexEntry) error
	ListSourceIndex(ctx context.Context) ([]types.SourceIndexEntry, error)
}

// DBStore keeps the index in the source_index table
type DBStore struct {
	db indexDB
}

// NewDBStore wraps a database handle
func NewDBStore(db indexDB) *DBStore {
	return &DBStore{db: db}
}

// Load reads every index row
func (s *DBStore) Load(ctx context.Context) ([]types.SourceIndexEntry, error) {
	return s.db.ListSourceIndex(ctx)
}

// Save replaces the stored index
func (s *DBStore) Save(ctx context.Context, entries []types.SourceIndexEntry) error {
	return s.db.ReplaceSourceIndex(ctx, entries)
}

// Multi writes to every store and loads from the first store holding an index
type Multi []Store

// Load returns the entries of the first store that has any. A failing store is skipped
// when a later one answers; the first error is returned only if no store does.
func (m Multi) Load(ctx context.Context) ([]types.SourceIndexEntry, error) {
	var firstErr error
	answered := false
	for _, s := range m {
		entries, err := s.Load(ctx)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		answered = true
		if len(entries) > 0 {
			return entries, nil
		}
	}
	if answered {
		return nil, nil
	}
	return nil, firstErr
}

// Save writes to every store, stopping at the first failure
func (m Multi) Save(ctx context.Context, entries []types.SourceIndexEntry) error {
	for _, s := range m {
		if err := s.Save(ctx, entries); err != nil {
			return err
		}
	}
	return nil
}
