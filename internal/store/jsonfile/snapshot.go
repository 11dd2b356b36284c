// Package jsonfile persists scan snapshots and per-column manual orders
// as a single JSON file. Writes are atomic (temp file + rename) and the
// store is safe for concurrent use.
package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/colonyops/taskboard/internal/core/task"
)

// SnapshotFile is the root JSON structure stored on disk.
type SnapshotFile struct {
	Pending   []task.Task `json:"pending"`
	Completed []task.Task `json:"completed"`

	// ManualOrders maps "board/column" keys to persisted id orders.
	ManualOrders map[string][]int `json:"manual_orders,omitempty"`

	// NextID is the next unassigned task id. Ids are never reused.
	NextID int `json:"next_id,omitempty"`
}

// SnapshotStore reads and writes the snapshot file.
type SnapshotStore struct {
	path string
	mu   sync.RWMutex
}

// NewSnapshotStore creates a snapshot store at the given path.
func NewSnapshotStore(path string) *SnapshotStore {
	return &SnapshotStore{path: path}
}

// Load returns the stored task collection. A missing or empty file
// yields an empty collection.
func (s *SnapshotStore) Load(ctx context.Context) (task.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return task.Collection{}, err
	}

	return task.Collection{Pending: file.Pending, Completed: file.Completed}, nil
}

// SaveCollection replaces the stored tasks, keeping manual orders and
// the id counter intact.
func (s *SnapshotStore) SaveCollection(ctx context.Context, col task.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return err
	}

	file.Pending = col.Pending
	file.Completed = col.Completed
	return s.save(file)
}

// ManualOrder returns the persisted id order for a column key, nil when
// none is stored.
func (s *SnapshotStore) ManualOrder(ctx context.Context, key string) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return nil, err
	}

	return file.ManualOrders[key], nil
}

// SetManualOrder persists a healed id order for a column key.
func (s *SnapshotStore) SetManualOrder(ctx context.Context, key string, ids []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return err
	}

	if file.ManualOrders == nil {
		file.ManualOrders = make(map[string][]int)
	}
	file.ManualOrders[key] = ids
	return s.save(file)
}

// AllocateID hands out the next free task id and persists the counter.
// Ids already present in the snapshot are never reissued.
func (s *SnapshotStore) AllocateID(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return 0, err
	}

	next := file.NextID
	if next < 1 {
		next = 1
	}
	for _, lists := range [][]task.Task{file.Pending, file.Completed} {
		for _, t := range lists {
			if t.ID >= next {
				next = t.ID + 1
			}
		}
	}

	file.NextID = next + 1
	if err := s.save(file); err != nil {
		return 0, err
	}

	return next, nil
}

// load reads the snapshot file from disk. Returns an empty SnapshotFile
// if the file doesn't exist.
func (s *SnapshotStore) load() (SnapshotFile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return SnapshotFile{}, nil
		}
		return SnapshotFile{}, err
	}

	if len(data) == 0 {
		return SnapshotFile{}, nil
	}

	var file SnapshotFile
	if err := json.Unmarshal(data, &file); err != nil {
		return SnapshotFile{}, err
	}

	return file, nil
}

// save writes the snapshot file to disk atomically.
func (s *SnapshotStore) save(file SnapshotFile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}

	return os.Rename(tmp, s.path)
}
