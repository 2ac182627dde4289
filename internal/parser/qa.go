package parser

import (
	"regexp"
	"strings"

	"github.com/bookprep/bookprep/internal/types"
)

// questionMarker matches the numbered question markers in a Q&A response.
var questionMarker = regexp.MustCompile(`\*\*Question \d+:\*\*`)

// answerMarker separates a question from its answer within a segment.
const answerMarker = "**Answer:**"

// ParseQA extracts question/answer pairs from a response containing
// **Question <n>:** markers. The preamble before the first marker is
// discarded. Order is preserved and duplicates are kept. A trailing marker
// with no answer yields a record with an empty answer rather than being
// dropped.
func ParseQA(response string) []types.QARecord {
	markers := questionMarker.FindAllStringIndex(response, -1)
	if len(markers) == 0 {
		return nil
	}

	records := make([]types.QARecord, 0, len(markers))
	for i, m := range markers {
		end := len(response)
		if i+1 < len(markers) {
			end = markers[i+1][0]
		}
		segment := response[m[1]:end]

		var question, answer string
		if idx := strings.Index(segment, answerMarker); idx >= 0 {
			question = strings.TrimSpace(segment[:idx])
			answer = strings.TrimSpace(segment[idx+len(answerMarker):])
		} else {
			question = strings.TrimSpace(segment)
		}

		records = append(records, types.QARecord{Question: question, Answer: answer})
	}

	return records
}
