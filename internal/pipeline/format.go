package pipeline

import (
	"fmt"
	"strings"

	"github.com/bookprep/bookprep/internal/types"
)

// Format renders Q&A records as study text: a "Q:" line, an "A:" line, and a
// blank line per record. Records with an empty question or answer are skipped.
func Format(qa []types.QARecord) string {
	var b strings.Builder
	for _, rec := range qa {
		if rec.Question == "" || rec.Answer == "" {
			continue
		}
		fmt.Fprintf(&b, "Q: %s\nA: %s\n\n", rec.Question, rec.Answer)
	}
	return b.String()
}
