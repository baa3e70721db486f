// Package history optionally records canary outcomes as JSON files so
// past rollouts can be reviewed from the dashboard. Recording is
// best-effort: a history failure never fails the simulation call.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/modelworks/workbench/internal/canary"
)

// ErrOutcomeNotFound is returned when an outcome ID does not match any
// recorded file.
var ErrOutcomeNotFound = errors.New("outcome not found")

// Entry is one recorded canary outcome.
type Entry struct {
	ID         string         `json:"id"`
	RecordedAt time.Time      `json:"recorded_at"`
	Outcome    canary.Outcome `json:"outcome"`
}

// FileStore writes one JSON file per recorded outcome under dir.
type FileStore struct {
	dir string

	mu  sync.Mutex
	now func() time.Time
}

// NewFileStore creates a FileStore rooted at dir. The directory is
// created on first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir, now: time.Now}
}

// Record persists an outcome and returns its assigned ID.
func (fs *FileStore) Record(outcome canary.Outcome) (string, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := os.MkdirAll(fs.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating history dir: %w", err)
	}

	now := fs.now().UTC()
	id := fmt.Sprintf("%s-%s-%s", now.Format("20060102T150405.000000000"), outcome.CurrentModel, outcome.NewModel)
	entry := Entry{ID: id, RecordedAt: now, Outcome: outcome}

	raw, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(fs.dir, id+".json"), raw, 0o644); err != nil {
		return "", fmt.Errorf("writing history file: %w", err)
	}
	return id, nil
}

// List returns all recorded outcomes, newest first. Unreadable or
// malformed files are skipped.
func (fs *FileStore) List() ([]Entry, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("reading history dir: %w", err)
	}

	out := []Entry{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(fs.dir, e.Name()))
		if err != nil {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(raw, &entry); err != nil {
			continue
		}
		if entry.ID == "" {
			entry.ID = strings.TrimSuffix(e.Name(), ".json")
		}
		out = append(out, entry)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].RecordedAt.Equal(out[j].RecordedAt) {
			return out[i].RecordedAt.After(out[j].RecordedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// Get returns one recorded outcome by ID.
func (fs *FileStore) Get(id string) (Entry, error) {
	entries, err := fs.List()
	if err != nil {
		return Entry{}, err
	}
	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("%q: %w", id, ErrOutcomeNotFound)
}
