package annotate

import (
	"regexp"
	"strings"

	"github.com/refalign/refalign/layout"
	"github.com/refalign/refalign/model"
)

// headingTokens is the fixed vocabulary of bibliography heading texts,
// covering English and Indonesian section titles.
var headingTokens = []string{
	"references",
	"reference",
	"referensi",
	"daftar referensi",
	"daftar pustaka",
	"daftar rujukan",
	"daftar bacaan",
	"sumber pustaka",
	"sumber rujukan",
	"bibliography",
	"bibliografi",
	"pustaka rujukan",
	"literature cited",
	"list of references",
	"works cited",
}

// maxHeadingWords caps how many words a line may carry and still count
// as a heading candidate.
const maxHeadingWords = 8

// headingValidationLines is how many lines after a candidate heading
// are inspected for reference-like signals.
const headingValidationLines = 8

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9\s]`)

// normalizeHeading lowercases a line and strips punctuation so heading
// comparison ignores decoration like trailing colons.
func normalizeHeading(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	text = nonAlnumRe.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}

// matchesHeadingToken reports whether a normalized line equals one of
// the heading vocabulary entries.
func matchesHeadingToken(norm string) bool {
	for _, token := range headingTokens {
		if norm == token {
			return true
		}
	}
	return false
}

// locateHeadingInLines scans a page's lines forward for a bibliography
// heading. A line matches when its normalized text equals a vocabulary
// token, or when joined with the following line it does (a heading
// split across two lines, e.g. "DAFTAR" / "PUSTAKA"). The candidate is
// validated by checking the following lines for reference-like
// signals; an unvalidated candidate is rejected and the scan continues.
// Returns the heading's rectangles and true on success.
func locateHeadingInLines(idx *layout.PageIndex) ([]model.Rect, bool) {
	lines := idx.Lines
	for li, line := range lines {
		if line.WordCount() > maxHeadingWords {
			continue
		}
		norm := normalizeHeading(line.Text())
		if norm == "" {
			continue
		}

		rects := line.Rects
		matched := matchesHeadingToken(norm)
		if !matched && li+1 < len(lines) {
			nextNorm := normalizeHeading(lines[li+1].Text())
			joined := strings.TrimSpace(norm + " " + nextNorm)
			if matchesHeadingToken(joined) {
				matched = true
				rects = append(append([]model.Rect{}, rects...), lines[li+1].Rects...)
			}
		}
		if !matched {
			continue
		}

		if validateHeadingContext(lines, li) {
			return rects, true
		}
	}
	return nil, false
}

// validateHeadingContext checks the 1..8 lines following a heading
// candidate for reference-like signals: entry markers, author-initial
// patterns, years, or doi.org links.
func validateHeadingContext(lines []*layout.Line, headingIdx int) bool {
	var sb strings.Builder
	for j := headingIdx + 1; j < len(lines) && j <= headingIdx+headingValidationLines; j++ {
		if IsLikelyReference(lines[j].Text()) {
			return true
		}
		sb.WriteString(lines[j].Text())
		sb.WriteString(" ")
	}
	context := sb.String()
	if context == "" {
		return false
	}
	if hasReferenceSignals(context) {
		return true
	}
	return strings.Contains(strings.ToLower(context), "doi.org")
}
