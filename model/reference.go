package model

// RefType classifies the kind of source a reference cites.
type RefType string

const (
	RefJournal    RefType = "journal"
	RefBook       RefType = "book"
	RefConference RefType = "conference"
	RefWebsite    RefType = "website"
	RefOther      RefType = "other"
)

// Status is the upstream validation verdict for a reference.
type Status string

const (
	StatusValid   Status = "valid"
	StatusInvalid Status = "invalid"
)

// Quartile is a ScimagoJR journal ranking quartile. Empty means not
// ranked or not found.
type Quartile string

const (
	Q1 Quartile = "Q1"
	Q2 Quartile = "Q2"
	Q3 Quartile = "Q3"
	Q4 Quartile = "Q4"
)

// ReferenceRecord is one already-validated bibliography entry, produced
// by the upstream extraction and index-lookup pipeline. The engine
// consumes these as opaque facts; it never recomputes type, year, or
// indexing status.
type ReferenceRecord struct {
	// Number is the 1-based reference number within the document.
	// Numbers are expected to be unique and contiguous but the engine
	// tolerates gaps and duplicates.
	Number int `json:"number" yaml:"number"`

	// RawText is the reference text as it appears in the source,
	// including embedded line breaks. Used for the highest-fidelity
	// search tiers.
	RawText string `json:"raw_text" yaml:"raw_text"`

	// CleanText is the whitespace-normalized reference text.
	CleanText string `json:"clean_text" yaml:"clean_text"`

	// JournalName is the parsed journal or source name, if any.
	JournalName string `json:"journal_name,omitempty" yaml:"journal_name,omitempty"`

	// Type is the reference classification.
	Type RefType `json:"type" yaml:"type"`

	// Year is the parsed publication year, 0 if unknown.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// Indexed is true when the journal was found in either bibliometric
	// database. IndexedScimago and IndexedScopus carry the per-database
	// detail used in note text.
	Indexed        bool `json:"indexed" yaml:"indexed"`
	IndexedScimago bool `json:"indexed_scimago,omitempty" yaml:"indexed_scimago,omitempty"`
	IndexedScopus  bool `json:"indexed_scopus,omitempty" yaml:"indexed_scopus,omitempty"`

	// Quartile is the ScimagoJR quartile when known.
	Quartile Quartile `json:"quartile,omitempty" yaml:"quartile,omitempty"`

	// Status is the upstream validation verdict.
	Status Status `json:"status" yaml:"status"`

	// YearRecent is true when the upstream validation judged the
	// publication year recent enough. Feeds the summary counts only.
	YearRecent bool `json:"year_recent,omitempty" yaml:"year_recent,omitempty"`

	// ScimagoLink and ScopusLink are optional database links included
	// in note text when present.
	ScimagoLink string `json:"scimago_link,omitempty" yaml:"scimago_link,omitempty"`
	ScopusLink  string `json:"scopus_link,omitempty" yaml:"scopus_link,omitempty"`
}

// SearchText returns the best text available for locating the reference
// on a page: RawText when present, otherwise CleanText.
func (r ReferenceRecord) SearchText() string {
	if r.RawText != "" {
		return r.RawText
	}
	return r.CleanText
}
