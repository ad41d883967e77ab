package annotate

import (
	"strings"
	"testing"
)

// sectionDocument builds a synthetic full text with body prose first and
// a bibliography in the final stretch.
func sectionDocument() string {
	var sb strings.Builder
	for i := 0; i < 60; i++ {
		sb.WriteString("Body paragraph discussing the experimental methodology in detail.\n")
	}
	sb.WriteString("\n")
	sb.WriteString("REFERENCES\n")
	sb.WriteString("\n")
	sb.WriteString("[1] Smith, J. (2021). Machine learning methods. https://doi.org/10.1000/xyz\n")
	sb.WriteString("[2] Doe, A. (2022). Deep models in practice. Journal of Things.\n")
	sb.WriteString("[3] Brown, C. (2023). More methods. https://doi.org/10.1000/abc\n")
	sb.WriteString("\n")
	sb.WriteString("ACKNOWLEDGMENTS\n")
	sb.WriteString("The authors thank their colleagues.\n")
	return sb.String()
}

func TestLocateSection_FindsLateHeading(t *testing.T) {
	section := LocateSection(sectionDocument())
	if section == nil {
		t.Fatal("LocateSection() returned nil, want the REFERENCES heading")
	}
	if !strings.EqualFold(section.Keyword, "references") {
		t.Errorf("Keyword = %q, want 'REFERENCES'", section.Keyword)
	}
	if section.Score <= 0 {
		t.Errorf("Score = %d, want positive for a well-formed heading", section.Score)
	}
}

func TestLocateSection_PrefersLateOccurrence(t *testing.T) {
	// The word also appears standalone early in the document; the late
	// occurrence followed by entries must win.
	doc := "References\n" +
		strings.Repeat("Body text about the study design and analysis.\n", 80) +
		"\nREFERENCES\n\n" +
		"[1] Smith, J. (2021). Methods. https://doi.org/10.1000/xyz\n" +
		"[2] Doe, A. (2022). Models. https://doi.org/10.1000/abc\n"

	section := LocateSection(doc)
	if section == nil {
		t.Fatal("LocateSection() returned nil")
	}
	if section.LineNum == 0 {
		t.Error("LocateSection() picked the early occurrence, want the late one")
	}
}

func TestLocateSection_NoHeading(t *testing.T) {
	if section := LocateSection("Just prose.\nNothing else here.\n"); section != nil {
		t.Errorf("LocateSection() = %+v, want nil", section)
	}
}

func TestSectionEnd_BoundedByFollowOnSection(t *testing.T) {
	doc := sectionDocument()
	section := LocateSection(doc)
	if section == nil {
		t.Fatal("LocateSection() returned nil")
	}

	end := SectionEnd(doc, section.CharIndex)
	if end < 0 {
		t.Fatal("SectionEnd() = -1, want the ACKNOWLEDGMENTS offset")
	}
	if !strings.HasPrefix(doc[end:], "ACKNOWLEDGMENTS") {
		t.Errorf("SectionEnd() points at %q, want ACKNOWLEDGMENTS", doc[end:end+15])
	}
}

func TestSectionEnd_NoFollowOnSection(t *testing.T) {
	doc := "REFERENCES\n[1] Smith, J. (2021). Methods.\n"
	if end := SectionEnd(doc, 0); end != -1 {
		t.Errorf("SectionEnd() = %d, want -1 when the section runs to the end", end)
	}
}
