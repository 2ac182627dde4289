package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// File is a Backend persisted as a single JSON file. The full entry map is
// loaded at open and rewritten atomically (temp file + rename) on every
// mutation. Suitable for the small entry counts a study session produces.
type File struct {
	mu      sync.RWMutex
	path    string
	entries map[string]Entry
}

// OpenFile opens (or creates) a file-backed cache at path.
func OpenFile(path string) (*File, error) {
	f := &File{
		path:    path,
		entries: make(map[string]Entry),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return f, nil
		}
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &f.entries); err != nil {
			return nil, fmt.Errorf("corrupt cache file %s: %w", path, err)
		}
	}

	return f, nil
}

// Get returns the entry for key, if present.
func (f *File) Get(key string) (Entry, bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	e, ok := f.entries[key]
	return e, ok, nil
}

// Put stores an entry and persists the cache to disk.
func (f *File) Put(e Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[e.Key] = e
	return f.persist()
}

// Delete removes the entry for key and persists the cache to disk.
func (f *File) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.entries[key]; !ok {
		return nil
	}
	delete(f.entries, key)
	return f.persist()
}

// persist writes the entry map atomically. Must be called with lock held.
func (f *File) persist() error {
	data, err := json.MarshalIndent(f.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("failed to replace cache file: %w", err)
	}
	return nil
}

// Verify interface
var _ Backend = (*File)(nil)
