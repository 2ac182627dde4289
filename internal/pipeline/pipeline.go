// Package pipeline orchestrates the chapter to plot points to Q&A flow.
// Each run is linear: list chapters, locate the requested chapter, generate
// plot points, generate questions and answers, render. Transition failures
// short-circuit the run before any record is persisted.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bookprep/bookprep/internal/parser"
	"github.com/bookprep/bookprep/internal/prompts"
	"github.com/bookprep/bookprep/internal/records"
	"github.com/bookprep/bookprep/internal/types"
)

// ErrEmptyChapterList indicates chapter listing produced no usable titles.
var ErrEmptyChapterList = errors.New("chapter list is empty")

// ErrGenerationFailed indicates the model reported an error instead of
// producing plot-point content.
var ErrGenerationFailed = errors.New("plot point generation failed")

// Executor is the prompt execution surface the pipeline depends on.
type Executor interface {
	Execute(ctx context.Context, prompt string) (string, error)
	ExecuteFresh(ctx context.Context, prompt string) (string, error)
}

// ChapterLocator resolves a chapter's page span and extracted text.
type ChapterLocator interface {
	Locate(ctx context.Context, bookID, chapterTitle string, orderedTitles []string) (*types.ChapterSpan, error)
}

// Result is the outcome of a successful pipeline run.
type Result struct {
	Record   *types.PlotPointRecord
	QA       []types.QARecord
	Rendered string
}

// Pipeline runs the generation flow for one (book, chapter) request at a time.
type Pipeline struct {
	executor Executor
	locator  ChapterLocator
	store    records.Store
	logger   *slog.Logger
}

// New creates a new Pipeline.
func New(exec Executor, loc ChapterLocator, store records.Store, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{executor: exec, locator: loc, store: store, logger: logger}
}

// Run generates plot points and Q&A content for one chapter of a book.
// bookID names the PDF on disk; bookName is the human-readable title used in
// prompts and records.
func (p *Pipeline) Run(ctx context.Context, bookID, bookName, chapterTitle string) (*Result, error) {
	titles, err := p.listChapters(ctx, bookName)
	if err != nil {
		return nil, err
	}
	p.logger.Info("chapter list obtained", "book", bookName, "chapters", len(titles))

	span, err := p.locator.Locate(ctx, bookID, chapterTitle, titles)
	if err != nil {
		return nil, fmt.Errorf("failed to locate chapter %q: %w", chapterTitle, err)
	}

	// Plot points always come from a fresh model call; stale analysis is
	// worse than a repeated request.
	plotResponse, err := p.executor.ExecuteFresh(ctx, prompts.PlotPoints(bookName, chapterTitle, span.Text))
	if err != nil {
		return nil, fmt.Errorf("plot point generation: %w", err)
	}
	if strings.Contains(plotResponse, "Error") {
		return nil, fmt.Errorf("%w: model response reported an error", ErrGenerationFailed)
	}

	fields := parser.ParsePlotPoints(plotResponse)

	rec := &types.PlotPointRecord{
		BookName:        bookName,
		ChapterName:     chapterTitle,
		ChapterNumber:   chapterNumber(titles, chapterTitle),
		PlotPointFields: fields,
	}
	if err := p.store.SavePlotPoints(rec); err != nil {
		return nil, fmt.Errorf("failed to persist plot points: %w", err)
	}
	p.logger.Info("plot points persisted",
		"book", bookName,
		"chapter", chapterTitle,
		"chapter_number", rec.ChapterNumber,
		"record_id", rec.ID)

	qa, err := p.generateQA(ctx, bookName, chapterTitle, fields)
	if err != nil {
		return nil, err
	}

	return &Result{
		Record:   rec,
		QA:       qa,
		Rendered: Format(qa),
	}, nil
}

// listChapters asks the model for the book's ordered chapter titles.
func (p *Pipeline) listChapters(ctx context.Context, bookName string) ([]string, error) {
	response, err := p.executor.Execute(ctx, prompts.ChapterList(bookName))
	if err != nil {
		return nil, fmt.Errorf("chapter listing: %w", err)
	}

	titles := parser.ParseChapterList(response)
	if len(titles) == 0 {
		return nil, fmt.Errorf("%q: %w", bookName, ErrEmptyChapterList)
	}
	return titles, nil
}

// generateQA asks for exam questions, then fills in a model answer for every
// question the first response left unanswered. A failed answer call leaves
// that record's answer empty so the renderer skips it.
func (p *Pipeline) generateQA(ctx context.Context, bookName, chapterTitle string, fields types.PlotPointFields) ([]types.QARecord, error) {
	response, err := p.executor.Execute(ctx, prompts.Questions(bookName, chapterTitle, fields))
	if err != nil {
		return nil, fmt.Errorf("question generation: %w", err)
	}

	qa := parser.ParseQA(response)
	for i := range qa {
		if qa[i].Answer != "" || qa[i].Question == "" {
			continue
		}
		answer, err := p.executor.Execute(ctx, prompts.Answers(bookName, chapterTitle, qa[i].Question, fields))
		if err != nil {
			p.logger.Warn("answer generation failed",
				"question", qa[i].Question,
				"error", err)
			continue
		}
		qa[i].Answer = strings.TrimSpace(answer)
	}
	return qa, nil
}

// chapterNumber is the 1-based position of the chapter in the list, or 0
// when the chapter is absent.
func chapterNumber(titles []string, chapterTitle string) int {
	for i, t := range titles {
		if t == chapterTitle {
			return i + 1
		}
	}
	return 0
}
