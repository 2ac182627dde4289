// Package parser recovers typed fields from the model's free-form responses.
// Parsing is best effort: the model is asked, but not guaranteed, to produce
// the expected section headers. Unknown labels are ignored and missing labels
// leave fields empty; neither is an error.
package parser

import (
	"regexp"
	"strings"

	"github.com/bookprep/bookprep/internal/types"
)

// headerPattern matches bolded section headers of the form **<Label>:**.
var headerPattern = regexp.MustCompile(`\*\*([A-Za-z\s]+):\*\*`)

// header is a section header occurrence: its label and character offset.
type header struct {
	label  string
	offset int
}

// ParsePlotPoints splits a labeled response into the eight narrative-analysis
// fields. Headers may appear in any order; a section's content runs from its
// header to the next header (or end of text).
func ParsePlotPoints(response string) types.PlotPointFields {
	var fields types.PlotPointFields

	// Ordered sequence of (label, offset) pairs, so the "next boundary"
	// lookup is an explicit indexed step.
	var headers []header
	for _, m := range headerPattern.FindAllStringSubmatchIndex(response, -1) {
		headers = append(headers, header{
			label:  response[m[2]:m[3]],
			offset: m[0],
		})
	}

	targets := map[string]*string{
		"death_and_tragic_events": &fields.DeathAndTragicEvents,
		"decisions":               &fields.Decisions,
		"conflicts":               &fields.Conflicts,
		"character_development":   &fields.CharacterDevelopment,
		"symbolism_and_imagery":   &fields.SymbolismAndImagery,
		"foreshadowing":           &fields.Foreshadowing,
		"setting_description":     &fields.SettingDescription,
		"chapter_summary":         &fields.ChapterSummary,
	}

	for i, h := range headers {
		end := len(response)
		if i+1 < len(headers) {
			end = headers[i+1].offset
		}
		section := response[h.offset:end]

		key := normalizeLabel(h.label)
		target, known := targets[key]
		if !known {
			continue
		}

		// Discard everything up to and including the last ** delimiter,
		// which strips the header markup itself.
		if idx := strings.LastIndex(section, "**"); idx >= 0 {
			section = section[idx+2:]
		}
		*target = strings.TrimSpace(section)
	}

	return fields
}

// normalizeLabel turns a header label into a field key:
// trimmed, lowercased, spaces replaced with underscores.
func normalizeLabel(label string) string {
	key := strings.ToLower(strings.TrimSpace(label))
	return strings.ReplaceAll(key, " ", "_")
}
