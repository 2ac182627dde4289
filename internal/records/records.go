// Package records persists generated study content.
package records

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bookprep/bookprep/internal/types"
)

// Store persists plot point records, keyed by (book name, chapter name).
type Store interface {
	// SavePlotPoints stores a record, replacing any prior record for the
	// same book and chapter.
	SavePlotPoints(rec *types.PlotPointRecord) error

	// GetPlotPoints returns the stored record for a chapter, if any.
	GetPlotPoints(bookName, chapterName string) (*types.PlotPointRecord, bool, error)

	// ListPlotPoints returns all records for a book.
	ListPlotPoints(bookName string) ([]types.PlotPointRecord, error)
}

// FileStore is a Store persisted as a single JSON file.
type FileStore struct {
	mu      sync.RWMutex
	path    string
	records map[string]types.PlotPointRecord
}

// OpenFileStore opens (or creates) a file-backed record store at path.
func OpenFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path:    path,
		records: make(map[string]types.PlotPointRecord),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read records file: %w", err)
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.records); err != nil {
			return nil, fmt.Errorf("corrupt records file %s: %w", path, err)
		}
	}

	return s, nil
}

func recordKey(bookName, chapterName string) string {
	return bookName + "\x1f" + chapterName
}

// SavePlotPoints stores a record. Missing ID and timestamp are filled in.
func (s *FileStore) SavePlotPoints(rec *types.PlotPointRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[recordKey(rec.BookName, rec.ChapterName)] = *rec
	return s.persist()
}

// GetPlotPoints returns the stored record for a chapter, if any.
func (s *FileStore) GetPlotPoints(bookName, chapterName string) (*types.PlotPointRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[recordKey(bookName, chapterName)]
	if !ok {
		return nil, false, nil
	}
	return &rec, true, nil
}

// ListPlotPoints returns all records for a book, ordered by chapter number.
func (s *FileStore) ListPlotPoints(bookName string) ([]types.PlotPointRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []types.PlotPointRecord
	for _, rec := range s.records {
		if rec.BookName == bookName {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ChapterNumber < out[j].ChapterNumber
	})
	return out, nil
}

// persist writes the record map atomically. Must be called with lock held.
func (s *FileStore) persist() error {
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create records directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write records file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace records file: %w", err)
	}
	return nil
}

// Verify interface
var _ Store = (*FileStore)(nil)
