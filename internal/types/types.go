// Package types provides shared types used across multiple packages.
// This package has no dependencies on other bookprep packages to avoid import cycles.
package types

import "time"

// ChapterSpan is the resolved page range of a chapter inside a book PDF,
// together with the extracted text of those pages.
// Computed once by the locator, then cached; immutable thereafter.
type ChapterSpan struct {
	BookID       string `json:"book_id"`
	ChapterTitle string `json:"chapter_title"`

	// StartPage and EndPage are 0-based, inclusive page indexes.
	// Invariant: StartPage <= EndPage.
	StartPage int `json:"start_page"`
	EndPage   int `json:"end_page"`

	// Text is the concatenated plain text of every page in the span,
	// joined with a single space.
	Text string `json:"text"`
}

// PlotPointFields holds the eight narrative-analysis sections extracted from
// a model response. Every field is always present; empty string means the
// section header never appeared in the response.
type PlotPointFields struct {
	DeathAndTragicEvents string `json:"death_and_tragic_events"`
	Decisions            string `json:"decisions"`
	Conflicts            string `json:"conflicts"`
	CharacterDevelopment string `json:"character_development"`
	SymbolismAndImagery  string `json:"symbolism_and_imagery"`
	Foreshadowing        string `json:"foreshadowing"`
	SettingDescription   string `json:"setting_description"`
	ChapterSummary       string `json:"chapter_summary"`
}

// PlotPointRecord is the persisted result of a plot-points generation run.
// Created once per (book, chapter) request and not mutated afterwards.
type PlotPointRecord struct {
	ID          string    `json:"id"`
	BookName    string    `json:"book_name"`
	ChapterName string    `json:"chapter_name"`
	CreatedAt   time.Time `json:"created_at"`

	// ChapterNumber is the 1-based position of the chapter in the book's
	// chapter list, or 0 when the chapter could not be located in the list.
	ChapterNumber int `json:"chapter_number"`

	PlotPointFields
}

// QARecord is a single generated question/answer pair.
// Sequences of QARecords preserve generation order and are not deduplicated.
type QARecord struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
