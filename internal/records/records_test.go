package records

import (
	"path/filepath"
	"testing"

	"github.com/bookprep/bookprep/internal/types"
)

func TestFileStoreSaveAndGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plot_points.json")

	store, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}

	rec := &types.PlotPointRecord{
		BookName:      "Gatsby",
		ChapterName:   "Chapter 3",
		ChapterNumber: 3,
		PlotPointFields: types.PlotPointFields{
			ChapterSummary: "A party happens.",
		},
	}
	if err := store.SavePlotPoints(rec); err != nil {
		t.Fatalf("failed to save record: %v", err)
	}
	if rec.ID == "" {
		t.Error("expected ID to be assigned on save")
	}
	if rec.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be assigned on save")
	}

	got, ok, err := store.GetPlotPoints("Gatsby", "Chapter 3")
	if err != nil {
		t.Fatalf("failed to get record: %v", err)
	}
	if !ok {
		t.Fatal("expected record to exist")
	}
	if got.ChapterSummary != "A party happens." {
		t.Errorf("unexpected summary: %q", got.ChapterSummary)
	}

	_, ok, err = store.GetPlotPoints("Gatsby", "Chapter 4")
	if err != nil {
		t.Fatalf("failed to get record: %v", err)
	}
	if ok {
		t.Error("expected no record for unknown chapter")
	}
}

func TestFileStoreReplacesSameChapter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plot_points.json")

	store, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}

	first := &types.PlotPointRecord{BookName: "Gatsby", ChapterName: "Chapter 1"}
	first.ChapterSummary = "old"
	if err := store.SavePlotPoints(first); err != nil {
		t.Fatalf("failed to save record: %v", err)
	}

	second := &types.PlotPointRecord{BookName: "Gatsby", ChapterName: "Chapter 1"}
	second.ChapterSummary = "new"
	if err := store.SavePlotPoints(second); err != nil {
		t.Fatalf("failed to save record: %v", err)
	}

	recs, err := store.ListPlotPoints("Gatsby")
	if err != nil {
		t.Fatalf("failed to list records: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if recs[0].ChapterSummary != "new" {
		t.Errorf("expected replacement, got %q", recs[0].ChapterSummary)
	}
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plot_points.json")

	store, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	rec := &types.PlotPointRecord{BookName: "Gatsby", ChapterName: "Chapter 2", ChapterNumber: 2}
	if err := store.SavePlotPoints(rec); err != nil {
		t.Fatalf("failed to save record: %v", err)
	}

	reopened, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	got, ok, err := reopened.GetPlotPoints("Gatsby", "Chapter 2")
	if err != nil {
		t.Fatalf("failed to get record: %v", err)
	}
	if !ok {
		t.Fatal("expected record after reopen")
	}
	if got.ID != rec.ID {
		t.Errorf("expected ID %q, got %q", rec.ID, got.ID)
	}
}

func TestFileStoreListOrdersByChapterNumber(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plot_points.json")

	store, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}

	for _, rec := range []*types.PlotPointRecord{
		{BookName: "Gatsby", ChapterName: "Chapter 3", ChapterNumber: 3},
		{BookName: "Gatsby", ChapterName: "Chapter 1", ChapterNumber: 1},
		{BookName: "Other", ChapterName: "Chapter 1", ChapterNumber: 1},
		{BookName: "Gatsby", ChapterName: "Chapter 2", ChapterNumber: 2},
	} {
		if err := store.SavePlotPoints(rec); err != nil {
			t.Fatalf("failed to save record: %v", err)
		}
	}

	recs, err := store.ListPlotPoints("Gatsby")
	if err != nil {
		t.Fatalf("failed to list records: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}
	for i, want := range []int{1, 2, 3} {
		if recs[i].ChapterNumber != want {
			t.Errorf("record %d: expected chapter %d, got %d", i, want, recs[i].ChapterNumber)
		}
	}
}
