package annotate

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/refalign/refalign/model"
)

var (
	// leadingMarkerRe matches the numbered/bracketed markers that open
	// a bibliography entry: [3], (3), 3.
	leadingMarkerRe = regexp.MustCompile(`^(\[\d+\]|\(\d+\)|\d+\.)`)

	// authorInitialRe matches author-initial entry openings like
	// "Smith, J." or "Nguyen, T. H."
	authorInitialRe = regexp.MustCompile(`^[A-Z][a-zA-Z\-']{2,},\s+([A-Z]\.\s?)+`)

	// orgYearRe matches organization-name openings followed by a
	// parenthesized year, e.g. "World Health Organization. (2019".
	orgYearRe = regexp.MustCompile(`^([A-Z][a-zA-Z']+\s){2,}\.\s\(\d{4}`)

	// parenYearRe matches a 4-digit year in parentheses.
	parenYearRe = regexp.MustCompile(`\(\d{4}\)`)

	// anyYearRe matches a bare 4-digit token anywhere in a line.
	anyYearRe = regexp.MustCompile(`\(\d{4}\)|\b\d{4}\b`)

	markerPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\[(\d+)\]$`),
		regexp.MustCompile(`^\((\d+)\)$`),
		regexp.MustCompile(`^(\d+)\.$`),
	}
)

// IsReferenceEntryLine reports whether a line has bibliography-entry
// shape: a leading numbered/bracketed marker or an author-initial
// pattern. Used to scope year flagging to reference entries.
func IsReferenceEntryLine(text string) bool {
	text = strings.TrimSpace(text)
	return leadingMarkerRe.MatchString(text) || authorInitialRe.MatchString(text)
}

// IsLikelyReference is the broader entry test used when validating a
// heading candidate: entry markers, author initials, organization plus
// year, or a parenthesized year with a doi.org link.
func IsLikelyReference(text string) bool {
	text = strings.TrimSpace(text)
	if len(text) < 20 || len(text) > 500 {
		return false
	}
	if leadingMarkerRe.MatchString(text) {
		return true
	}
	if authorInitialRe.MatchString(text) {
		return true
	}
	if orgYearRe.MatchString(text) {
		return true
	}
	if parenYearRe.MatchString(text) && strings.Contains(strings.ToLower(text), "doi.org") {
		return true
	}
	return false
}

// hasReferenceSignals is the looser context check applied to the lines
// following a heading candidate: any year token or a leading marker.
func hasReferenceSignals(text string) bool {
	if anyYearRe.MatchString(text) {
		return true
	}
	return leadingMarkerRe.MatchString(strings.TrimSpace(text))
}

// Marker is one leading reference-number marker found on a page, with
// the vertical span it governs.
type Marker struct {
	// Num is the reference number the marker encodes.
	Num int

	// Y is the marker's top coordinate; NextY is the following
	// marker's top coordinate, or 0 for the last marker on the page.
	Y, NextY float64

	// WordIndex is the marker's position in the page word stream.
	WordIndex int
}

// CollectMarkers extracts [n], (n), and "n." reference markers from a
// page's word stream, sorted by vertical position with each marker's
// span bounded by the next.
func CollectMarkers(words []model.Word) []Marker {
	var markers []Marker
	for wi, w := range words {
		t := strings.TrimSpace(w.Text)
		for _, pat := range markerPatterns {
			m := pat.FindStringSubmatch(t)
			if m == nil {
				continue
			}
			num, err := strconv.Atoi(m[1])
			if err == nil {
				markers = append(markers, Marker{
					Num:       num,
					Y:         w.Rect.Y0,
					WordIndex: wi,
				})
			}
			break
		}
	}

	sort.SliceStable(markers, func(i, j int) bool {
		return markers[i].Y < markers[j].Y
	})
	for i := range markers {
		if i+1 < len(markers) {
			markers[i].NextY = markers[i+1].Y
		}
	}
	return markers
}
