// Package pdf provides per-page plain-text access to book PDF files.
package pdf

import (
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/bookprep/bookprep/internal/home"
)

// PageTextSource exposes a paginated document as per-page plain text.
// Page indexes are 0-based throughout; page 0 is typically front matter.
type PageTextSource interface {
	// PageCount returns the number of pages in the document.
	PageCount() int

	// PageText extracts the plain text of page i (0-based).
	PageText(i int) (string, error)

	// Close releases the underlying file.
	Close() error
}

// Opener opens a document by book identifier.
type Opener interface {
	Open(bookID string) (PageTextSource, error)
}

// Library opens book PDFs stored under the home books directory.
type Library struct {
	home *home.Dir
}

// NewLibrary creates a Library over the given home directory.
func NewLibrary(h *home.Dir) *Library {
	return &Library{home: h}
}

// Open opens the PDF for a book identifier. A missing or corrupt document
// is a hard error; the caller does not retry.
func (l *Library) Open(bookID string) (PageTextSource, error) {
	path := l.home.BookPDFPath(bookID)
	return OpenFile(path)
}

// OpenFile opens a PDF document at an explicit path.
func OpenFile(path string) (PageTextSource, error) {
	// Cheap structural validation before handing the file to the text
	// extractor, which has weaker error reporting.
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	pageCount, err := api.PageCount(f, nil)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("corrupt PDF %s: %w", path, err)
	}
	if pageCount == 0 {
		return nil, fmt.Errorf("PDF %s has no pages", path)
	}

	file, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF %s: %w", path, err)
	}

	return &document{
		file:   file,
		reader: reader,
		pages:  reader.NumPage(),
	}, nil
}

// document is a PageTextSource backed by an open PDF file.
type document struct {
	file   *os.File
	reader *pdf.Reader
	pages  int
}

// PageCount returns the number of pages.
func (d *document) PageCount() int {
	return d.pages
}

// PageText extracts the plain text of page i (0-based).
func (d *document) PageText(i int) (string, error) {
	if i < 0 || i >= d.pages {
		return "", fmt.Errorf("page index %d out of range [0,%d)", i, d.pages)
	}

	// The underlying reader is 1-based.
	page := d.reader.Page(i + 1)
	if page.V.IsNull() {
		return "", nil
	}

	text, err := page.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("failed to extract text of page %d: %w", i, err)
	}
	return text, nil
}

// Close releases the underlying file.
func (d *document) Close() error {
	return d.file.Close()
}

// Verify interfaces
var (
	_ PageTextSource = (*document)(nil)
	_ Opener         = (*Library)(nil)
)
