package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bookprep/bookprep/internal/locator"
	"github.com/bookprep/bookprep/internal/records"
	"github.com/bookprep/bookprep/internal/types"
)

// scriptedExecutor returns canned responses selected by prompt substring.
type scriptedExecutor struct {
	rules      []scriptRule
	prompts    []string
	freshCalls int
}

type scriptRule struct {
	substr   string
	response string
	err      error
}

func (s *scriptedExecutor) respondWith(substr, response string) {
	s.rules = append(s.rules, scriptRule{substr: substr, response: response})
}

func (s *scriptedExecutor) failWith(substr string, err error) {
	s.rules = append(s.rules, scriptRule{substr: substr, err: err})
}

func (s *scriptedExecutor) Execute(_ context.Context, prompt string) (string, error) {
	return s.respond(prompt)
}

func (s *scriptedExecutor) ExecuteFresh(_ context.Context, prompt string) (string, error) {
	s.freshCalls++
	return s.respond(prompt)
}

func (s *scriptedExecutor) respond(prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	for _, r := range s.rules {
		if strings.Contains(prompt, r.substr) {
			return r.response, r.err
		}
	}
	return "", errors.New("no scripted response for prompt")
}

func (s *scriptedExecutor) promptSeen(substr string) bool {
	for _, p := range s.prompts {
		if strings.Contains(p, substr) {
			return true
		}
	}
	return false
}

// fakeLocator returns a fixed span or error regardless of titles.
type fakeLocator struct {
	span *types.ChapterSpan
	err  error
}

func (f *fakeLocator) Locate(_ context.Context, bookID, chapterTitle string, _ []string) (*types.ChapterSpan, error) {
	if f.err != nil {
		return nil, f.err
	}
	span := *f.span
	span.BookID = bookID
	span.ChapterTitle = chapterTitle
	return &span, nil
}

func newTestStore(t *testing.T) *records.FileStore {
	t.Helper()
	store, err := records.OpenFileStore(filepath.Join(t.TempDir(), "plot_points.json"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	return store
}

const chapterListResponse = "Chapter One\nChapter Two\nChapter Three"

const plotPointsResponse = "**Decisions:** She left.\n**Conflicts:** Man vs self.\n**Chapter Summary:** A departure."

const qaResponse = "Intro **Question 1:** What happened? **Answer:** She left. **Question 2:** Why?"

func TestRunSuccess(t *testing.T) {
	exec := &scriptedExecutor{}
	exec.respondWith("one chapter title per line", chapterListResponse)
	exec.respondWith("Analyze the chapter", plotPointsResponse)
	exec.respondWith("exam questions", qaResponse)
	exec.respondWith("model answer", "Fear.")

	store := newTestStore(t)
	loc := &fakeLocator{span: &types.ChapterSpan{StartPage: 5, EndPage: 9, Text: "chapter text"}}

	p := New(exec, loc, store, nil)
	result, err := p.Run(context.Background(), "book-1", "Gatsby", "Chapter Two")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Record.ChapterNumber != 2 {
		t.Errorf("expected chapter number 2, got %d", result.Record.ChapterNumber)
	}
	if result.Record.Decisions != "She left." {
		t.Errorf("unexpected decisions field: %q", result.Record.Decisions)
	}

	if len(result.QA) != 2 {
		t.Fatalf("expected 2 QA records, got %d", len(result.QA))
	}
	if result.QA[1].Answer != "Fear." {
		t.Errorf("expected second answer filled in, got %q", result.QA[1].Answer)
	}

	want := "Q: What happened?\nA: She left.\n\nQ: Why?\nA: Fear.\n\n"
	if result.Rendered != want {
		t.Errorf("unexpected rendering:\n%q\nwant:\n%q", result.Rendered, want)
	}

	if exec.freshCalls != 1 {
		t.Errorf("expected plot points to force a fresh call, got %d fresh calls", exec.freshCalls)
	}

	stored, ok, err := store.GetPlotPoints("Gatsby", "Chapter Two")
	if err != nil || !ok {
		t.Fatalf("expected persisted record, ok=%v err=%v", ok, err)
	}
	if stored.Conflicts != "Man vs self." {
		t.Errorf("unexpected persisted conflicts: %q", stored.Conflicts)
	}
}

func TestRunEmptyChapterList(t *testing.T) {
	exec := &scriptedExecutor{}
	exec.respondWith("one chapter title per line", "")

	store := newTestStore(t)
	p := New(exec, &fakeLocator{span: &types.ChapterSpan{Text: "text"}}, store, nil)

	_, err := p.Run(context.Background(), "book-1", "Gatsby", "Chapter Two")
	if !errors.Is(err, ErrEmptyChapterList) {
		t.Fatalf("expected ErrEmptyChapterList, got %v", err)
	}
	if exec.promptSeen("Analyze the chapter") {
		t.Error("pipeline must not generate plot points after an empty chapter list")
	}
	assertNothingPersisted(t, store)
}

func TestRunChapterNotFound(t *testing.T) {
	exec := &scriptedExecutor{}
	exec.respondWith("one chapter title per line", chapterListResponse)

	store := newTestStore(t)
	p := New(exec, &fakeLocator{err: locator.ErrNotFound}, store, nil)

	_, err := p.Run(context.Background(), "book-1", "Gatsby", "Chapter Two")
	if !errors.Is(err, locator.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if exec.promptSeen("Analyze the chapter") {
		t.Error("pipeline must not generate plot points for an unlocated chapter")
	}
	assertNothingPersisted(t, store)
}

func TestRunPlotPointsErrorResponse(t *testing.T) {
	exec := &scriptedExecutor{}
	exec.respondWith("one chapter title per line", chapterListResponse)
	exec.respondWith("Analyze the chapter", "Error: content policy refusal")

	store := newTestStore(t)
	p := New(exec, &fakeLocator{span: &types.ChapterSpan{Text: "text"}}, store, nil)

	_, err := p.Run(context.Background(), "book-1", "Gatsby", "Chapter Two")
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
	if exec.promptSeen("exam questions") {
		t.Error("pipeline must not generate questions after a failed analysis")
	}
	assertNothingPersisted(t, store)
}

func TestRunAnswerFailureLeavesRecordUnanswered(t *testing.T) {
	exec := &scriptedExecutor{}
	exec.respondWith("one chapter title per line", chapterListResponse)
	exec.respondWith("Analyze the chapter", plotPointsResponse)
	exec.respondWith("exam questions", "**Question 1:** Why?")
	exec.failWith("model answer", errors.New("api unavailable"))

	store := newTestStore(t)
	p := New(exec, &fakeLocator{span: &types.ChapterSpan{Text: "text"}}, store, nil)

	result, err := p.Run(context.Background(), "book-1", "Gatsby", "Chapter Two")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(result.QA) != 1 || result.QA[0].Answer != "" {
		t.Fatalf("expected one unanswered record, got %+v", result.QA)
	}
	if result.Rendered != "" {
		t.Errorf("unanswered records must not be rendered, got %q", result.Rendered)
	}
}

func TestRunChapterAbsentFromListGetsNumberZero(t *testing.T) {
	exec := &scriptedExecutor{}
	exec.respondWith("one chapter title per line", chapterListResponse)
	exec.respondWith("Analyze the chapter", plotPointsResponse)
	exec.respondWith("exam questions", qaResponse)
	exec.respondWith("model answer", "Fear.")

	store := newTestStore(t)
	p := New(exec, &fakeLocator{span: &types.ChapterSpan{Text: "text"}}, store, nil)

	result, err := p.Run(context.Background(), "book-1", "Gatsby", "Epilogue")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Record.ChapterNumber != 0 {
		t.Errorf("expected chapter number 0, got %d", result.Record.ChapterNumber)
	}
}

func TestFormat(t *testing.T) {
	t.Run("skips records with empty answer", func(t *testing.T) {
		qa := []types.QARecord{
			{Question: "What happened?", Answer: "She left."},
			{Question: "Why?", Answer: ""},
		}
		got := Format(qa)
		want := "Q: What happened?\nA: She left.\n\n"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("skips records with empty question", func(t *testing.T) {
		qa := []types.QARecord{{Question: "", Answer: "Orphan answer."}}
		if got := Format(qa); got != "" {
			t.Errorf("expected empty rendering, got %q", got)
		}
	})

	t.Run("empty sequence renders empty string", func(t *testing.T) {
		if got := Format(nil); got != "" {
			t.Errorf("expected empty rendering, got %q", got)
		}
	})
}

func assertNothingPersisted(t *testing.T, store *records.FileStore) {
	t.Helper()
	recs, err := store.ListPlotPoints("Gatsby")
	if err != nil {
		t.Fatalf("failed to list records: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected no persisted records, got %d", len(recs))
	}
}
