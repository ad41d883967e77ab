package annotate

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/refalign/refalign/model"
)

var titleCaser = cases.Title(language.English)

// colorFor maps a reference's validation outcome to a highlight color:
// indexed journals are green, unindexed journals pink, everything else
// yellow.
func colorFor(ref model.ReferenceRecord) model.Color {
	switch {
	case ref.Indexed:
		return model.ColorIndexed
	case ref.Type == model.RefJournal:
		return model.ColorUnindexed
	default:
		return model.ColorOther
	}
}

// titleFor builds the short annotation title for a reference highlight.
func titleFor(ref model.ReferenceRecord) string {
	switch {
	case ref.IndexedScimago && ref.IndexedScopus:
		return "Indexed in ScimagoJR & Scopus"
	case ref.IndexedScimago:
		return "Indexed in ScimagoJR"
	case ref.IndexedScopus:
		return "Indexed in Scopus"
	case ref.Type == model.RefJournal:
		return "Journal (not indexed)"
	default:
		return titleCaser.String(string(ref.Type))
	}
}

// yearDisplay formats the parsed year, tagging it [INVALID] when the
// upstream validation rejected the reference.
func yearDisplay(ref model.ReferenceRecord) string {
	year := "N/A"
	if ref.Year > 0 {
		year = fmt.Sprintf("%d", ref.Year)
	}
	if ref.Status == model.StatusInvalid {
		return year + " [INVALID]"
	}
	return year
}

// indexBadges renders the database badges for a journal reference.
func indexBadges(ref model.ReferenceRecord) string {
	var badges []string
	if ref.IndexedScimago {
		if ref.Quartile != "" {
			badges = append(badges, fmt.Sprintf("ScimagoJR (%s)", ref.Quartile))
		} else {
			badges = append(badges, "ScimagoJR")
		}
	}
	if ref.IndexedScopus {
		badges = append(badges, "Scopus")
	}
	if len(badges) == 0 {
		return "Not indexed"
	}
	return strings.Join(badges, " & ")
}

// noteFor builds the structured note body for a reference highlight.
func noteFor(ref model.ReferenceRecord) string {
	var sb strings.Builder

	if ref.Type == model.RefJournal {
		fmt.Fprintf(&sb, "[%d] Journal - %s\n", ref.Number, strings.ToUpper(string(ref.Status)))
		fmt.Fprintf(&sb, "Journal: %s\n", orNA(ref.JournalName))
		fmt.Fprintf(&sb, "Year: %s\n", yearDisplay(ref))
		fmt.Fprintf(&sb, "Indexed: %s\n", indexBadges(ref))
		if ref.ScimagoLink != "" {
			fmt.Fprintf(&sb, "ScimagoJR: %s\n", ref.ScimagoLink)
		}
		if ref.ScopusLink != "" {
			fmt.Fprintf(&sb, "Scopus: %s\n", ref.ScopusLink)
		}
		return sb.String()
	}

	fmt.Fprintf(&sb, "[%d] %s\n", ref.Number, titleCaser.String(string(ref.Type)))
	fmt.Fprintf(&sb, "Source: %s\n", orNA(ref.JournalName))
	fmt.Fprintf(&sb, "Year: %s\n", yearDisplay(ref))
	fmt.Fprintf(&sb, "Status: %s", strings.ToUpper(string(ref.Status)))
	if ref.IndexedScimago || ref.IndexedScopus {
		fmt.Fprintf(&sb, "\nNote: indexed in %s", indexBadges(ref))
	}
	sb.WriteString("\n")
	return sb.String()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// pct formats count as a percentage of total, guarding division by zero.
func pct(count, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(count)/float64(total)*100)
}

// summaryNote builds the aggregate note attached once to the
// bibliography heading: totals by type, indexing counts, year recency,
// and the quartile histogram.
func summaryNote(refs []model.ReferenceRecord, now time.Time) string {
	total := len(refs)
	counts := map[model.RefType]int{}
	scimago, scopus, both, recent := 0, 0, 0, 0
	quartiles := map[model.Quartile]int{}
	notFound := 0

	for _, r := range refs {
		counts[r.Type]++
		if r.IndexedScimago {
			scimago++
		}
		if r.IndexedScopus {
			scopus++
		}
		if r.IndexedScimago && r.IndexedScopus {
			both++
		}
		if r.YearRecent {
			recent++
		}
		switch r.Quartile {
		case model.Q1, model.Q2, model.Q3, model.Q4:
			quartiles[r.Quartile]++
		default:
			if r.Type == model.RefJournal {
				notFound++
			}
		}
	}

	other := total - counts[model.RefJournal] - counts[model.RefBook] - counts[model.RefConference]

	var sb strings.Builder
	fmt.Fprintf(&sb, "Total references: %d\n", total)
	fmt.Fprintf(&sb, "• Journal: %d (%s)\n", counts[model.RefJournal], pct(counts[model.RefJournal], total))
	fmt.Fprintf(&sb, "• Book: %d (%s)\n", counts[model.RefBook], pct(counts[model.RefBook], total))
	fmt.Fprintf(&sb, "• Conference: %d (%s)\n", counts[model.RefConference], pct(counts[model.RefConference], total))
	fmt.Fprintf(&sb, "• Other: %d\n\n", other)
	fmt.Fprintf(&sb, "Indexed:\n")
	fmt.Fprintf(&sb, "• ScimagoJR: %d (%s)\n", scimago, pct(scimago, total))
	fmt.Fprintf(&sb, "• Scopus: %d (%s)\n", scopus, pct(scopus, total))
	fmt.Fprintf(&sb, "• Both: %d (%s)\n\n", both, pct(both, total))
	fmt.Fprintf(&sb, "Recent years: %d of %d\n", recent, total)
	fmt.Fprintf(&sb, "SJR quartiles:\n")
	fmt.Fprintf(&sb, "• Q1:%d\n• Q2:%d\n• Q3:%d\n• Q4:%d\n", quartiles[model.Q1], quartiles[model.Q2], quartiles[model.Q3], quartiles[model.Q4])
	fmt.Fprintf(&sb, "• Not found:%d\n", notFound)
	fmt.Fprintf(&sb, "Generated at %s", now.Format("2006-01-02 15:04:05"))
	return sb.String()
}
