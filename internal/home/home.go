package home

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultDirName is the default name for the bookprep home directory.
	DefaultDirName = ".bookprep"

	// BooksDirName is the subdirectory holding book PDF files.
	BooksDirName = "books"

	// CacheDirName is the subdirectory holding prompt and chapter caches.
	CacheDirName = "cache"

	// RecordsDirName is the subdirectory holding generated records.
	RecordsDirName = "records"

	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"
)

// Dir represents the bookprep home directory structure.
type Dir struct {
	path string
}

// New creates a new Dir with the given path.
// If path is empty, uses the default (~/.bookprep).
func New(path string) (*Dir, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, DefaultDirName)
	}

	return &Dir{path: path}, nil
}

// Path returns the root path of the home directory.
func (d *Dir) Path() string {
	return d.path
}

// BooksPath returns the directory holding book PDFs.
func (d *Dir) BooksPath() string {
	return filepath.Join(d.path, BooksDirName)
}

// BookPDFPath returns the PDF path for a book identifier.
// Book identifiers map to files as <books>/<bookID>.pdf.
func (d *Dir) BookPDFPath(bookID string) string {
	return filepath.Join(d.BooksPath(), bookID+".pdf")
}

// CachePath returns the cache directory.
func (d *Dir) CachePath() string {
	return filepath.Join(d.path, CacheDirName)
}

// PromptCachePath returns the file backing the prompt response cache.
func (d *Dir) PromptCachePath() string {
	return filepath.Join(d.CachePath(), "prompts.json")
}

// ChapterCachePath returns the file backing the chapter text cache.
func (d *Dir) ChapterCachePath() string {
	return filepath.Join(d.CachePath(), "chapters.json")
}

// RecordsPath returns the directory holding generated records.
func (d *Dir) RecordsPath() string {
	return filepath.Join(d.path, RecordsDirName)
}

// PlotPointsPath returns the file backing stored plot point records.
func (d *Dir) PlotPointsPath() string {
	return filepath.Join(d.RecordsPath(), "plot_points.json")
}

// ConfigPath returns the path to the default config file.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// EnsureExists creates the home directory and subdirectories if they don't exist.
func (d *Dir) EnsureExists() error {
	for _, p := range []string{d.BooksPath(), d.CachePath(), d.RecordsPath()} {
		if err := os.MkdirAll(p, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", p, err)
		}
	}
	return nil
}

// Exists returns true if the home directory exists.
func (d *Dir) Exists() bool {
	_, err := os.Stat(d.path)
	return err == nil
}

// ConfigExists returns true if the config file exists in the home directory.
func (d *Dir) ConfigExists() bool {
	_, err := os.Stat(d.ConfigPath())
	return err == nil
}
