package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const entryExt = ".cache.json"

// FileCache stores response bodies on disk, one file per key, each with
// its own expiry. Writes go through a temp file and rename so readers
// never observe a partial entry.
type FileCache struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

// entry is the on-disk representation of a cached body
type entry struct {
	Key       string    `json:"key"`
	Data      []byte    `json:"data"`
	StoredAt  time.Time `json:"stored_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (e entry) expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// NewFileCache creates the cache directory (0750) and returns a cache whose
// entries live for ttl.
func NewFileCache(dir string, ttl time.Duration) (*FileCache, error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("cache: ttl must be positive, got %s", ttl)
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("cache: mkdir %q: %w", dir, err)
	}
	return &FileCache{dir: dir, ttl: ttl, now: time.Now}, nil
}

// DefaultCacheDir returns $XDG_CACHE_HOME/analog, falling back to
// ~/.cache/analog and finally a directory under os.TempDir.
func DefaultCacheDir() string {
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return filepath.Join(xdgCache, "analog")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "analog-cache")
	}
	return filepath.Join(home, ".cache", "analog")
}

// TTL returns the lifetime given to new entries
func (c *FileCache) TTL() time.Duration {
	return c.ttl
}

func (c *FileCache) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:])+entryExt)
}

// read loads the entry stored at path. Corrupt files are removed.
func (c *FileCache) read(path string) (entry, bool) {
	// #nosec G304 -- path is derived from a hash or a directory listing of the cache dir
	data, err := os.ReadFile(path)
	if err != nil {
		return entry{}, false
	}
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		_ = os.Remove(path)
		return entry{}, false
	}
	return e, true
}

// Get returns the body stored for key if present and not expired.
func (c *FileCache) Get(key string) ([]byte, bool) {
	path := c.path(key)
	e, ok := c.read(path)
	if !ok {
		return nil, false
	}
	if e.Key != key || e.expired(c.now()) {
		_ = os.Remove(path)
		return nil, false
	}
	return e.Data, true
}

// Set stores value under key, replacing any previous entry.
func (c *FileCache) Set(key string, value []byte) error {
	now := c.now()
	data, err := json.Marshal(entry{
		Key:       key,
		Data:      value,
		StoredAt:  now,
		ExpiresAt: now.Add(c.ttl),
	})
	if err != nil {
		return fmt.Errorf("cache: marshal: %w", err)
	}

	tmp, err := os.CreateTemp(c.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("cache: create temp: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("cache: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cache: close: %w", err)
	}
	// Entries are private to the user
	if err := os.Chmod(tmp.Name(), 0600); err != nil {
		return fmt.Errorf("cache: chmod: %w", err)
	}
	return os.Rename(tmp.Name(), c.path(key))
}

// Delete removes the entry for key. Missing entries are not an error.
func (c *FileCache) Delete(key string) error {
	err := os.Remove(c.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cache: delete: %w", err)
	}
	return nil
}

// Clear removes every entry and returns how many were removed
func (c *FileCache) Clear() (int, error) {
	return c.sweep(func(entry) bool { return true })
}

// Cleanup removes expired and corrupt entries and returns how many were removed
func (c *FileCache) Cleanup() (int, error) {
	now := c.now()
	return c.sweep(func(e entry) bool { return e.expired(now) })
}

func (c *FileCache) sweep(remove func(e entry) bool) (int, error) {
	files, err := os.ReadDir(c.dir)
	if err != nil {
		return 0, fmt.Errorf("cache: read dir: %w", err)
	}

	removed := 0
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), entryExt) {
			continue
		}
		path := filepath.Join(c.dir, f.Name())
		e, ok := c.read(path)
		if !ok {
			// read already dropped the corrupt file
			if _, statErr := os.Stat(path); errors.Is(statErr, fs.ErrNotExist) {
				removed++
			}
			continue
		}
		if remove(e) {
			if err := os.Remove(path); err == nil {
				removed++
			}
		}
	}
	return removed, nil
}
