package prompts

import (
	"strings"
	"testing"

	"github.com/bookprep/bookprep/internal/types"
)

func TestChapterList(t *testing.T) {
	p := ChapterList("The Great Gatsby")
	if !strings.Contains(p, `"The Great Gatsby"`) {
		t.Errorf("prompt missing book name: %s", p)
	}
	if !strings.Contains(p, "one chapter title per line") {
		t.Errorf("prompt missing format instruction: %s", p)
	}
}

func TestPlotPoints(t *testing.T) {
	p := PlotPoints("Gatsby", "Chapter 3", "There was music from my neighbor's house.")

	for _, header := range []string{
		"**Death and Tragic Events:**",
		"**Decisions:**",
		"**Conflicts:**",
		"**Character Development:**",
		"**Symbolism and Imagery:**",
		"**Foreshadowing:**",
		"**Setting Description:**",
		"**Chapter Summary:**",
	} {
		if !strings.Contains(p, header) {
			t.Errorf("prompt missing header %s", header)
		}
	}
	if !strings.Contains(p, "There was music from my neighbor's house.") {
		t.Error("prompt missing chapter text")
	}
}

func TestQuestionsAndAnswers(t *testing.T) {
	fields := types.PlotPointFields{
		Decisions:      "She left.",
		ChapterSummary: "A party happens.",
	}

	t.Run("questions prompt includes non-empty fields only", func(t *testing.T) {
		p := Questions("Gatsby", "Chapter 3", fields)
		if !strings.Contains(p, "Decisions: She left.") {
			t.Errorf("prompt missing decisions: %s", p)
		}
		if !strings.Contains(p, "Chapter summary: A party happens.") {
			t.Errorf("prompt missing summary: %s", p)
		}
		if strings.Contains(p, "Foreshadowing:") {
			t.Error("empty sections must be omitted")
		}
	})

	t.Run("answers prompt includes the question", func(t *testing.T) {
		p := Answers("Gatsby", "Chapter 3", "Why did she leave?", fields)
		if !strings.Contains(p, "Why did she leave?") {
			t.Errorf("prompt missing question: %s", p)
		}
	})
}

func TestPromptsAreDistinctPerInput(t *testing.T) {
	// The executor caches by exact prompt string, so different inputs must
	// produce different prompts.
	if ChapterList("Book A") == ChapterList("Book B") {
		t.Error("chapter list prompts must differ per book")
	}
	if PlotPoints("B", "C1", "text") == PlotPoints("B", "C2", "text") {
		t.Error("plot point prompts must differ per chapter")
	}
}
