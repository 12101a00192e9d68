package sheets

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// SnapshotStore provides thread-safe persistence of fetched tables, keyed by
// (spreadsheet, range). It backs the offline fetcher used in development and
// tests, and receives the output of cmd/mockgen.
type SnapshotStore struct {
	mu  sync.RWMutex
	dir string
}

// NewSnapshotStore creates a store rooted at dir.
func NewSnapshotStore(dir string) *SnapshotStore {
	return &SnapshotStore{dir: dir}
}

// Save persists one table snapshot as indented JSON.
func (s *SnapshotStore) Save(spreadsheetID, readRange string, table *Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create snapshot dir: %w", err)
	}

	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	path := s.path(spreadsheetID, readRange)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	log.Debug().Str("path", path).Int("rows", len(table.Rows)).Msg("Snapshot saved")
	return nil
}

// Load reads a previously saved snapshot. A missing snapshot is an error:
// the offline fetcher must surface it as a failed fetch, not an empty table.
func (s *SnapshotStore) Load(spreadsheetID, readRange string) (*Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path := s.path(spreadsheetID, readRange)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}

	var table Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}

	log.Debug().Str("path", path).Int("rows", len(table.Rows)).Msg("Snapshot loaded")
	return &table, nil
}

func (s *SnapshotStore) path(spreadsheetID, readRange string) string {
	return filepath.Join(s.dir, snapshotKey(spreadsheetID, readRange)+".json")
}

// snapshotKey flattens a (spreadsheet, range) pair into a filesystem-safe name.
func snapshotKey(spreadsheetID, readRange string) string {
	raw := spreadsheetID + "_" + readRange
	replacer := strings.NewReplacer("!", "_", ":", "_", "/", "_", "\\", "_", " ", "_", "'", "")
	return replacer.Replace(raw)
}

// SnapshotFetcher serves tables from a SnapshotStore instead of the network.
type SnapshotFetcher struct {
	store *SnapshotStore
}

// NewSnapshotFetcher creates a Fetcher backed by on-disk snapshots.
func NewSnapshotFetcher(store *SnapshotStore) *SnapshotFetcher {
	return &SnapshotFetcher{store: store}
}

// Fetch implements Fetcher.
func (f *SnapshotFetcher) Fetch(spreadsheetID string, readRange string) (*Table, error) {
	return f.store.Load(spreadsheetID, readRange)
}
