// Package locator infers a chapter's page span from literal title recurrence
// in a book PDF's running text. Book PDFs rarely carry machine-readable
// structure, so boundaries come from a single-pass greedy scan that trades
// precision for simplicity.
package locator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bookprep/bookprep/internal/cache"
	"github.com/bookprep/bookprep/internal/pdf"
	"github.com/bookprep/bookprep/internal/types"
)

// ErrNotFound indicates the requested chapter's start page could not be
// resolved anywhere in the document.
var ErrNotFound = errors.New("chapter not found")

// fallbackWindowPages is the window width used when the next chapter's start
// was not resolved either. A heuristic constant, tunable.
const fallbackWindowPages = 4

// unresolved marks a chapter title that never matched any page.
const unresolved = -1

// Locator resolves chapter page spans and caches the extracted text.
type Locator struct {
	opener pdf.Opener
	cache  *cache.ChapterCache
	logger *slog.Logger
}

// New creates a new Locator.
func New(opener pdf.Opener, chapterCache *cache.ChapterCache, logger *slog.Logger) *Locator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Locator{opener: opener, cache: chapterCache, logger: logger}
}

// Locate returns the page span and extracted text of the requested chapter.
// orderedTitles defines adjacency: each chapter ends where the next begins.
// Spans are computed once and served from the cache afterwards.
func (l *Locator) Locate(ctx context.Context, bookID, chapterTitle string, orderedTitles []string) (*types.ChapterSpan, error) {
	if span, ok, err := l.cache.Get(bookID, chapterTitle); err != nil {
		return nil, fmt.Errorf("chapter cache lookup failed: %w", err)
	} else if ok {
		l.logger.Debug("chapter cache hit", "book", bookID, "chapter", chapterTitle)
		return span, nil
	}

	index := titleIndex(orderedTitles, chapterTitle)
	if index < 0 {
		return nil, fmt.Errorf("%q is not in the chapter list: %w", chapterTitle, ErrNotFound)
	}

	doc, err := l.opener.Open(bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to open book %q: %w", bookID, err)
	}
	defer doc.Close()

	starts, err := ScanStarts(ctx, doc, orderedTitles)
	if err != nil {
		return nil, err
	}
	for i, title := range orderedTitles {
		l.logger.Debug("chapter start resolved", "chapter", title, "page", starts[i])
	}

	lastPage := doc.PageCount() - 1

	// Page 0 is reserved for front matter and the table of contents, so a
	// match there is treated the same as no match at all.
	start := starts[index]
	if start == unresolved || start == 0 {
		return nil, fmt.Errorf("%q: %w", chapterTitle, ErrNotFound)
	}

	end := lastPage
	if index < len(orderedTitles)-1 {
		end = starts[index+1] - 1
		if end <= start {
			// The next chapter's start was not resolved; fall back to a
			// fixed-width window.
			end = start + fallbackWindowPages
		}
		if end > lastPage {
			end = lastPage
		}
	}

	l.logger.Info("extracting chapter",
		"book", bookID,
		"chapter", chapterTitle,
		"start_page", start,
		"end_page", end)

	text, err := extractRange(ctx, doc, start, end)
	if err != nil {
		return nil, err
	}

	span := &types.ChapterSpan{
		BookID:       bookID,
		ChapterTitle: chapterTitle,
		StartPage:    start,
		EndPage:      end,
		Text:         text,
	}

	if err := l.cache.Put(span); err != nil {
		// The span is still good; a cache write failure only costs a rescan.
		l.logger.Warn("failed to cache chapter span", "error", err)
	}

	return span, nil
}

// ScanStarts scans the document's pages in order and returns the start page
// of each title, or -1 where a title never matched. First match wins: a
// title is expected to appear once, near the chapter's beginning.
func ScanStarts(ctx context.Context, doc pdf.PageTextSource, orderedTitles []string) ([]int, error) {
	starts := make([]int, len(orderedTitles))
	for i := range starts {
		starts[i] = unresolved
	}

	remaining := len(orderedTitles)
	for page := 0; page < doc.PageCount() && remaining > 0; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text, err := doc.PageText(page)
		if err != nil {
			return nil, fmt.Errorf("failed to read page %d: %w", page, err)
		}

		for i, title := range orderedTitles {
			if starts[i] != unresolved {
				continue
			}
			if strings.Contains(text, title) {
				starts[i] = page
				remaining--
			}
		}
	}

	return starts, nil
}

// extractRange concatenates the plain text of pages start..end inclusive,
// joined with a single space.
func extractRange(ctx context.Context, doc pdf.PageTextSource, start, end int) (string, error) {
	pages := make([]string, 0, end-start+1)
	for i := start; i <= end; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := doc.PageText(i)
		if err != nil {
			return "", fmt.Errorf("failed to read page %d: %w", i, err)
		}
		pages = append(pages, text)
	}
	return strings.Join(pages, " "), nil
}

func titleIndex(titles []string, title string) int {
	for i, t := range titles {
		if t == title {
			return i
		}
	}
	return -1
}
