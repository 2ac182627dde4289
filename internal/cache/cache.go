// Package cache provides the response cache: a key-value store mapping exact
// prompt strings (or chapter identities) to previously obtained results.
// Backends are pluggable; the cache is always passed as an explicit dependency.
package cache

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/bookprep/bookprep/internal/types"
)

// Entry is a single cached result.
type Entry struct {
	// Key is the literal lookup key. For prompt entries this is the exact
	// prompt string with no normalization.
	Key string `json:"key"`

	// Value is the cached result text.
	Value string `json:"value"`

	CreatedAt time.Time `json:"created_at"`
}

// Backend is a pluggable key-value storage backend.
// At most one entry is stored per key; Put overwrites.
type Backend interface {
	Get(key string) (Entry, bool, error)
	Put(e Entry) error
	Delete(key string) error
}

// PromptCache maps exact prompt strings to model responses.
type PromptCache struct {
	backend Backend
}

// NewPromptCache creates a prompt cache over the given backend.
func NewPromptCache(backend Backend) *PromptCache {
	return &PromptCache{backend: backend}
}

// Get returns the cached response for the exact prompt string.
// Lookup uses literal string equality only.
func (c *PromptCache) Get(prompt string) (string, bool, error) {
	e, ok, err := c.backend.Get(prompt)
	if err != nil || !ok {
		return "", false, err
	}
	return e.Value, true, nil
}

// Put stores a response under the exact prompt string, overwriting any
// prior entry for that prompt.
func (c *PromptCache) Put(prompt, response string) error {
	return c.backend.Put(Entry{Key: prompt, Value: response, CreatedAt: time.Now()})
}

// ChapterCache maps (book identifier, chapter title) to a resolved ChapterSpan.
type ChapterCache struct {
	backend Backend
}

// NewChapterCache creates a chapter cache over the given backend.
func NewChapterCache(backend Backend) *ChapterCache {
	return &ChapterCache{backend: backend}
}

// chapterKey joins book and chapter with a separator that cannot appear in
// either (unit separator), so distinct identities never collide.
func chapterKey(bookID, chapterTitle string) string {
	return bookID + "\x1f" + chapterTitle
}

// Get returns the cached span for a chapter identity.
func (c *ChapterCache) Get(bookID, chapterTitle string) (*types.ChapterSpan, bool, error) {
	e, ok, err := c.backend.Get(chapterKey(bookID, chapterTitle))
	if err != nil || !ok {
		return nil, false, err
	}

	var span types.ChapterSpan
	if err := json.Unmarshal([]byte(e.Value), &span); err != nil {
		return nil, false, fmt.Errorf("corrupt chapter cache entry for %q: %w", chapterTitle, err)
	}
	return &span, true, nil
}

// Put stores a resolved chapter span.
func (c *ChapterCache) Put(span *types.ChapterSpan) error {
	data, err := json.Marshal(span)
	if err != nil {
		return fmt.Errorf("failed to marshal chapter span: %w", err)
	}
	return c.backend.Put(Entry{
		Key:       chapterKey(span.BookID, span.ChapterTitle),
		Value:     string(data),
		CreatedAt: time.Now(),
	})
}

// Invalidate removes a cached chapter span, forcing recomputation.
func (c *ChapterCache) Invalidate(bookID, chapterTitle string) error {
	return c.backend.Delete(chapterKey(bookID, chapterTitle))
}
