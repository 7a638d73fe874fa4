// Package store keeps the last known schedule on disk so the list view can
// be restored between runs.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/analogio/analog-cli/internal/models"
)

const (
	fileName = "schedule.json"
	lockName = "schedule.json.lock"
)

// Store reads and writes schedule snapshots in a directory. Access from
// several processes is serialized with a file lock.
type Store struct {
	dir string
}

// New creates a store in dir, creating the directory if needed
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Path returns the snapshot file path
func (s *Store) Path() string {
	return filepath.Join(s.dir, fileName)
}

func (s *Store) lock() *flock.Flock {
	return flock.New(filepath.Join(s.dir, lockName))
}

// Save writes the schedule atomically. Day order and both hour sequences are
// written exactly as given.
func (s *Store) Save(schedule models.Schedule) error {
	if err := schedule.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid schedule: %w", err)
	}
	if schedule == nil {
		schedule = models.Schedule{}
	}

	data, err := json.MarshalIndent(schedule, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode schedule: %w", err)
	}

	lock := s.lock()
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock state: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	tmp, err := os.CreateTemp(s.dir, fileName+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write schedule: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write schedule: %w", err)
	}
	if err := os.Rename(tmpName, s.Path()); err != nil {
		return fmt.Errorf("failed to replace schedule: %w", err)
	}
	return nil
}

// Load reads the saved schedule. ok is false when nothing was saved yet.
func (s *Store) Load() (schedule models.Schedule, ok bool, err error) {
	lock := s.lock()
	if err := lock.RLock(); err != nil {
		return nil, false, fmt.Errorf("failed to lock state: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	data, err := os.ReadFile(s.Path())
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read schedule: %w", err)
	}

	if err := json.Unmarshal(data, &schedule); err != nil {
		return nil, false, fmt.Errorf("failed to decode %s: %w", s.Path(), err)
	}
	if schedule == nil {
		schedule = models.Schedule{}
	}
	return schedule, true, nil
}
