package annotate

import (
	"regexp"
	"sort"
	"strings"
)

// Section describes where the bibliography section starts in the
// document's full text.
type Section struct {
	// LineNum is the 0-based line of the heading in the full text.
	LineNum int

	// Keyword is the vocabulary entry that matched, as it appeared.
	Keyword string

	// CharIndex is the heading's character offset in the full text.
	CharIndex int

	// Score is the validation score the candidate won with.
	Score int
}

// sectionEndKeywords are section titles that commonly follow the
// bibliography; the earliest occurrence bounds the reference span.
var sectionEndKeywords = []string{
	"ACKNOWLEDGMENTS", "ACKNOWLEDGEMENTS", "ACKNOWLEDGMENT", "ACKNOWLEDGEMENT",
	"UCAPAN TERIMA KASIH", "TERIMA KASIH",
	"APPENDIX", "APPENDICES", "LAMPIRAN",
	"ABOUT THE AUTHORS", "ABOUT AUTHORS", "AUTHOR INFORMATION", "TENTANG PENULIS",
	"AUTHOR CONTRIBUTIONS", "KONTRIBUSI PENULIS",
	"FUNDING", "PENDANAAN",
	"CONFLICT OF INTEREST", "CONFLICTS OF INTEREST", "KONFLIK KEPENTINGAN",
	"COMPETING INTERESTS",
	"BIOGRAPHY", "BIOGRAFI", "AUTHOR BIOGRAPHY", "AUTHORS BIOGRAPHY",
}

var (
	sectionYearRe     = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	sectionDOIRe      = regexp.MustCompile(`(?i)doi\.org|DOI:|https?://`)
	sectionAuthorRe   = regexp.MustCompile(`\b[A-Z][a-z]+,\s*[A-Z]\.|[A-Z]\.\s*[A-Z]\.\s*[A-Z][a-z]+`)
	sectionCitationRe = regexp.MustCompile(`(?m)^\s*\[\d+\]|^\s*\d+\.\s+[A-Z]|[\[\(]\d{4}[a-z]?\)`)
	citationStartRe   = regexp.MustCompile(`^\s*[\(\[\d]`)
)

// sectionHeadingRe matches a heading token standing alone on a line.
var sectionHeadingRe = func() *regexp.Regexp {
	upper := make([]string, len(headingTokens))
	for i, t := range headingTokens {
		upper[i] = regexp.QuoteMeta(t)
	}
	return regexp.MustCompile(`(?i)^\s*(` + strings.Join(upper, "|") + `)\s*$`)
}()

// LocateSection finds the bibliography heading in the document's full
// text using scored heuristics: every standalone heading keyword is a
// candidate; candidates earn content points from reference signals in
// the following 50 lines (years, DOIs, author patterns, citation
// markers), position points for sitting late in the document, and
// format points for header shape (all caps, surrounded by blank
// lines). The best-scoring candidate wins, latest position breaking
// ties. Returns nil when no keyword matches anywhere.
func LocateSection(fullText string) *Section {
	lines := strings.Split(fullText, "\n")
	totalLines := len(lines)
	if totalLines == 0 {
		return nil
	}

	type scored struct {
		Section
		percent float64
	}
	var candidates []scored

	for lineNum, line := range lines {
		m := sectionHeadingRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		keyword := m[1]
		percent := float64(lineNum) / float64(totalLines) * 100

		sampleEnd := lineNum + 50
		if sampleEnd > totalLines {
			sampleEnd = totalLines
		}
		sample := strings.Join(lines[lineNum:sampleEnd], "\n")

		yearCount := len(sectionYearRe.FindAllString(sample, -1))
		doiCount := len(sectionDOIRe.FindAllString(sample, -1))
		authorCount := len(sectionAuthorRe.FindAllString(sample, -1))
		citationCount := len(sectionCitationRe.FindAllString(sample, -1))

		content := 0
		if yearCount >= 3 {
			content += 3
		}
		if yearCount >= 5 {
			content += 2
		}
		if doiCount >= 1 {
			content += 4
		}
		if authorCount >= 2 {
			content += 2
		}
		if citationCount >= 2 {
			content += 4
		}

		position := 0
		switch {
		case percent < 40:
			position = -20
		case percent < 60:
			position = -5
		case percent < 80:
			position = 5
		default:
			position = 10
		}

		format := 0
		clean := strings.TrimSpace(line)
		if clean == strings.ToUpper(clean) && len(clean) > 1 {
			format += 5
		}
		if lineNum > 0 && strings.TrimSpace(lines[lineNum-1]) == "" {
			format += 3
		}
		if lineNum < totalLines-1 && strings.TrimSpace(lines[lineNum+1]) == "" {
			format += 2
		}
		if !strings.EqualFold(clean, keyword) {
			format -= 15
		}
		if citationStartRe.MatchString(line) {
			format -= 10
		}
		if len(strings.Fields(clean)) > 3 {
			format -= 5
		}

		charIndex := 0
		for _, l := range lines[:lineNum] {
			charIndex += len(l) + 1
		}

		candidates = append(candidates, scored{
			Section: Section{
				LineNum:   lineNum,
				Keyword:   keyword,
				CharIndex: charIndex,
				Score:     content + position + format,
			},
			percent: percent,
		})
	}

	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].percent > candidates[j].percent
	})

	best := candidates[0].Section
	return &best
}

// SectionEnd returns the character index where the bibliography
// section ends, found by the earliest follow-on section keyword after
// startIndex, or -1 when no such keyword exists (the section runs to
// the end of the document).
func SectionEnd(fullText string, startIndex int) int {
	if startIndex < 0 || startIndex >= len(fullText) {
		return -1
	}
	searchText := fullText[startIndex:]

	earliest := -1
	for _, keyword := range sectionEndKeywords {
		re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(keyword))
		loc := re.FindStringIndex(searchText)
		if loc == nil {
			continue
		}
		absolute := startIndex + loc[0]
		if earliest == -1 || absolute < earliest {
			earliest = absolute
		}
	}
	return earliest
}
