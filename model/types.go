package model

import (
	"context"

	"golang.org/x/text/language"
)

// Metadata contains volume-level information parsed from the feature record.
// It is immutable once parsed.
type Metadata struct {
	ID            string
	SchemaVersion string
	Title         string
	Language      string // canonical BCP 47 form where the source code is recognized
	LanguageTag   language.Tag
	Imprint       string
	PubDate       string
	Genre         []string
	PageCount     int // declared page count from the record, not len(pages)
	CatalogID     string
}

// TokenPosCount is one (token, part-of-speech, count) entry for a page
// section. Entries are unique per (token, pos) pair within a section.
type TokenPosCount struct {
	Token string
	POS   string
	Count int
}

// SectionFeatures holds the raw decoded fields for one section of one page.
type SectionFeatures struct {
	TokenCount     int
	LineCount      int
	EmptyLineCount int
	SentenceCount  int
	TokenPos       []TokenPosCount
	BeginLineChars map[string]int

	// Advanced-record fields, absent until an advanced merge.
	EndLineChars map[string]int
	CapAlphaSeq  int
	HasAdvanced  bool
}

// PageRecord is the normalized decoded form of one page. Seq is the page's
// order in the source record; pages are never renumbered.
type PageRecord struct {
	Seq    int
	Header SectionFeatures
	Body   SectionFeatures
	Footer SectionFeatures
}

// features returns the stored section's fields. Only concrete sections are
// addressable; callers resolve views first.
func (r *PageRecord) features(s Section) *SectionFeatures {
	switch s {
	case Header:
		return &r.Header
	case Body:
		return &r.Body
	case Footer:
		return &r.Footer
	}
	return nil
}

// AdvancedSection holds the supplemental fields one section gains from an
// advanced record.
type AdvancedSection struct {
	BeginLineChars map[string]int
	EndLineChars   map[string]int
	CapAlphaSeq    int
}

// AdvancedPage is the per-page payload of an advanced record, aligned to the
// primary record by position and sequence number.
type AdvancedPage struct {
	Seq    int
	Header AdvancedSection
	Body   AdvancedSection
	Footer AdvancedSection
}

// AdvancedRecord is a parsed advanced feature file, ready to be merged into
// the Volume parsed from the matching primary file.
type AdvancedRecord struct {
	ID    string
	Pages []AdvancedPage
}

// CatalogRecord is the key-value record returned by the external catalog.
type CatalogRecord map[string]any

// CatalogClient fetches bibliographic metadata from an external catalog
// service. Implementations live outside this package; the core only defines
// the collaborator boundary. Fetch must honor ctx cancellation and report
// failure or expiry by returning an error wrapping ErrMetadataUnavailable.
type CatalogClient interface {
	Fetch(ctx context.Context, catalogID string) (CatalogRecord, error)
}
