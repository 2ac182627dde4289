package parser

import (
	"regexp"
	"strings"
)

// listItemPrefix strips leading bullets or numbering from a list line,
// e.g. "1. ", "2) ", "- ", "* ".
var listItemPrefix = regexp.MustCompile(`^\s*(?:[-*•]\s+|\d+[.)]\s+)`)

// ParseChapterList turns a model response listing chapter titles into an
// ordered title slice. One title per line; bullets and numbering are
// stripped, preamble lines ending with a colon and empty lines are skipped.
func ParseChapterList(response string) []string {
	var titles []string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasSuffix(line, ":") {
			continue
		}

		title := listItemPrefix.ReplaceAllString(line, "")
		title = strings.Trim(title, "*\"")
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		titles = append(titles, title)
	}
	return titles
}
