// Package prompts builds the prompt strings sent to the generation API.
// Templates are embedded so the binary is self-contained.
package prompts

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/bookprep/bookprep/internal/types"
)

//go:embed chapterlist.tmpl
var chapterListTmpl string

//go:embed plotpoints.tmpl
var plotPointsTmpl string

//go:embed questions.tmpl
var questionsTmpl string

//go:embed answers.tmpl
var answersTmpl string

var (
	chapterListTemplate = template.Must(template.New("chapterlist").Parse(chapterListTmpl))
	plotPointsTemplate  = template.Must(template.New("plotpoints").Parse(plotPointsTmpl))
	questionsTemplate   = template.Must(template.New("questions").Parse(questionsTmpl))
	answersTemplate     = template.Must(template.New("answers").Parse(answersTmpl))
)

// ChapterList builds the prompt asking for a book's ordered chapter titles.
func ChapterList(bookName string) string {
	return render(chapterListTemplate, chapterListTmpl, struct {
		BookName string
	}{bookName})
}

// PlotPoints builds the narrative-analysis prompt for a chapter.
func PlotPoints(bookName, chapterName, chapterText string) string {
	return render(plotPointsTemplate, plotPointsTmpl, struct {
		BookName    string
		ChapterName string
		ChapterText string
	}{bookName, chapterName, chapterText})
}

// Questions builds the Bagrut-style question generation prompt.
func Questions(bookName, chapterName string, fields types.PlotPointFields) string {
	return render(questionsTemplate, questionsTmpl, struct {
		BookName    string
		ChapterName string
		PlotPoints  string
	}{bookName, chapterName, renderFields(fields)})
}

// Answers builds the model-answer prompt for a single question.
func Answers(bookName, chapterName, question string, fields types.PlotPointFields) string {
	return render(answersTemplate, answersTmpl, struct {
		BookName    string
		ChapterName string
		Question    string
		PlotPoints  string
	}{bookName, chapterName, question, renderFields(fields)})
}

// render executes a template, falling back to the raw template text on error.
func render(tmpl *template.Template, raw string, data any) string {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return raw
	}
	return buf.String()
}

// renderFields flattens plot-point fields into labeled lines for inclusion
// in a downstream prompt. Empty sections are omitted.
func renderFields(fields types.PlotPointFields) string {
	sections := []struct {
		label string
		value string
	}{
		{"Death and tragic events", fields.DeathAndTragicEvents},
		{"Decisions", fields.Decisions},
		{"Conflicts", fields.Conflicts},
		{"Character development", fields.CharacterDevelopment},
		{"Symbolism and imagery", fields.SymbolismAndImagery},
		{"Foreshadowing", fields.Foreshadowing},
		{"Setting description", fields.SettingDescription},
		{"Chapter summary", fields.ChapterSummary},
	}

	var b strings.Builder
	for _, s := range sections {
		if s.value == "" {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", s.label, s.value)
	}
	return strings.TrimRight(b.String(), "\n")
}
