package model

import (
	"context"
	"errors"
	"fmt"
)

// Volume owns one book's metadata, its ordered page records and the
// per-configuration table cache. Volumes share no state with each other, so
// independent workers can each process their own Volume without
// coordination. Within one Volume, cache-populating calls are not locked;
// callers sharing a Volume across goroutines must serialize them.
type Volume struct {
	meta  Metadata
	pages []*PageRecord

	defaultSection Section

	cache map[TableConfig]*CountTable

	advanced   bool
	catalogRec CatalogRecord

	// Instrumentation for the caching contract: counts of SectionTable
	// constructions and page-local table computations.
	tableBuilds   int
	localComputes int
}

// NewVolume creates a Volume from parsed metadata and page records. The
// page order is the source order; pages are never renumbered. The default
// section starts as Body.
func NewVolume(meta Metadata, pages []*PageRecord) *Volume {
	return &Volume{
		meta:           meta,
		pages:          pages,
		defaultSection: Body,
		cache:          make(map[TableConfig]*CountTable),
	}
}

// Metadata returns the volume-level record metadata.
func (v *Volume) Metadata() Metadata {
	return v.meta
}

// ID returns the volume identifier.
func (v *Volume) ID() string {
	return v.meta.ID
}

// Year returns the publication year derived from the metadata's pubDate
// field, or zero when no four-digit year can be found. It is a read-only
// alias with no independent storage.
func (v *Volume) Year() int {
	digits := 0
	year := 0
	for _, r := range v.meta.PubDate {
		if r >= '0' && r <= '9' {
			digits++
			year = year*10 + int(r-'0')
			if digits == 4 {
				return year
			}
		} else {
			digits = 0
			year = 0
		}
	}
	return 0
}

// PageCount returns the number of parsed pages (which may differ from the
// declared Metadata.PageCount on damaged records).
func (v *Volume) PageCount() int {
	return len(v.pages)
}

// HasAdvanced reports whether an advanced record has been merged.
func (v *Volume) HasAdvanced() bool {
	return v.advanced
}

// DefaultSection returns the section that Default resolves to.
func (v *Volume) DefaultSection() Section {
	return v.defaultSection
}

// SetDefaultSection changes the section that Default resolves to. All is
// rejected since scalar queries cannot use it.
func (v *Volume) SetDefaultSection(s Section) error {
	if s == All || s == Default {
		return fmt.Errorf("%w: %s cannot be the default section", ErrInvalidSection, s)
	}
	v.defaultSection = s
	return nil
}

// resolveSection substitutes the volume default for the Default view.
func (v *Volume) resolveSection(s Section) Section {
	if s == Default {
		return v.defaultSection
	}
	return s
}

// Pages returns freshly bound Page facades in source order, using the
// volume's default section. No section tables are built until a page is
// queried, so iterating is cheap and restartable.
func (v *Volume) Pages() []*Page {
	return v.PagesWith(v.defaultSection)
}

// PagesWith is Pages with an explicit default section for the new pages.
func (v *Volume) PagesWith(def Section) []*Page {
	pages := make([]*Page, len(v.pages))
	for i, rec := range v.pages {
		pages[i] = &Page{vol: v, rec: rec, def: v.resolveSection(def)}
	}
	return pages
}

// Page returns the i-th page (0-based, source order).
func (v *Volume) Page(i int) (*Page, error) {
	if i < 0 || i >= len(v.pages) {
		return nil, fmt.Errorf("%w: %d of %d pages", ErrPageOutOfRange, i, len(v.pages))
	}
	return &Page{vol: v, rec: v.pages[i], def: v.defaultSection}, nil
}

// cachedTable returns the memoized table for an already-resolved
// configuration, or nil.
func (v *Volume) cachedTable(cfg TableConfig) *CountTable {
	return v.cache[cfg]
}

// TokenList returns the volume-wide count table for the configuration,
// merging every page's table keyed by (page, section, token, pos). The
// result is memoized per configuration: repeated calls return the identical
// table, and subsequent page-level queries with the same configuration are
// served by slicing it. Callers must not mutate the returned table.
func (v *Volume) TokenList(cfg TableConfig) *CountTable {
	cfg.Section = v.resolveSection(cfg.Section)
	if cached := v.cache[cfg]; cached != nil {
		return cached
	}
	table := NewCountTable()
	for _, rec := range v.pages {
		page := &Page{vol: v, rec: rec, def: v.defaultSection}
		table.Merge(page.localTable(cfg))
	}
	v.cache[cfg] = table
	return table
}

// Tokens returns the distinct token texts across the whole volume's default
// section, sorted.
func (v *Volume) Tokens() []string {
	return v.TokenList(TableConfig{Section: Default, CollapsePOS: true}).Tokens()
}

// TokensPerPage maps each page's sequence number to its declared token
// count for the default section.
func (v *Volume) TokensPerPage() map[int]int {
	out := make(map[int]int, len(v.pages))
	for _, rec := range v.pages {
		total := 0
		for _, s := range v.defaultSection.resolve() {
			total += rec.features(s).TokenCount
		}
		out[rec.Seq] = total
	}
	return out
}

// TermPageFreqs returns the page-by-token frequency matrix for the default
// section: rows keyed by page sequence, columns by token text. With
// pageFreq true each cell is 1 if the token occurs on the page (presence,
// document-frequency style); with pageFreq false each cell is the raw term
// frequency. The two are distinct semantics, not a scaling.
func (v *Volume) TermPageFreqs(pageFreq bool) map[int]map[string]int {
	table := v.TokenList(TableConfig{Section: Default, CollapsePOS: true})
	rows := make(map[int]map[string]int)
	for _, k := range table.Keys() {
		row := rows[k.Page]
		if row == nil {
			row = make(map[string]int)
			rows[k.Page] = row
		}
		row[k.Token] += table.Get(k)
	}
	if pageFreq {
		for _, row := range rows {
			for tok, n := range row {
				if n > 0 {
					row[tok] = 1
				}
			}
		}
	}
	return rows
}

// TermVolumeFreqs returns the column-wise sum of TermPageFreqs: with
// pageFreq true, the number of pages each token occurs on; with pageFreq
// false, the token's total count across the volume.
func (v *Volume) TermVolumeFreqs(pageFreq bool) map[string]int {
	out := make(map[string]int)
	for _, row := range v.TermPageFreqs(pageFreq) {
		for tok, n := range row {
			out[tok] += n
		}
	}
	return out
}

// LineCounts maps each page's sequence number to its line count for the
// default section.
func (v *Volume) LineCounts() map[int]int {
	return v.perPageScalar(func(f *SectionFeatures) int { return f.LineCount })
}

// SentenceCounts maps each page's sequence number to its sentence count for
// the default section.
func (v *Volume) SentenceCounts() map[int]int {
	return v.perPageScalar(func(f *SectionFeatures) int { return f.SentenceCount })
}

// EmptyLineCounts maps each page's sequence number to its empty-line count
// for the default section.
func (v *Volume) EmptyLineCounts() map[int]int {
	return v.perPageScalar(func(f *SectionFeatures) int { return f.EmptyLineCount })
}

func (v *Volume) perPageScalar(field func(*SectionFeatures) int) map[int]int {
	out := make(map[int]int, len(v.pages))
	for _, rec := range v.pages {
		total := 0
		for _, s := range v.defaultSection.resolve() {
			total += field(rec.features(s))
		}
		out[rec.Seq] = total
	}
	return out
}

// BeginLineChars returns the volume-wide union of line-begin character
// counts for the default section.
func (v *Volume) BeginLineChars() (map[string]int, error) {
	return v.lineBoundaryChars(LineBegin)
}

// EndLineChars returns the volume-wide union of line-end character counts
// for the default section. It requires a prior advanced-record merge.
func (v *Volume) EndLineChars() (map[string]int, error) {
	return v.lineBoundaryChars(LineEnd)
}

func (v *Volume) lineBoundaryChars(edge Edge) (map[string]int, error) {
	out := make(map[string]int)
	for _, page := range v.Pages() {
		chars, err := page.LineBoundaryChars(Default, edge)
		if err != nil {
			return nil, err
		}
		for ch, n := range chars {
			out[ch] += n
		}
	}
	return out, nil
}

// MergeAdvanced injects the advanced record's supplemental fields into the
// matching page records by positional correspondence. The advanced record
// must describe the same volume, with the same page count and ordering;
// otherwise it fails with ErrPageMismatch and leaves the volume untouched.
// Every cached table is dropped so later queries see the merged fields.
func (v *Volume) MergeAdvanced(adv *AdvancedRecord) error {
	if adv == nil {
		return fmt.Errorf("%w: nil advanced record", ErrPageMismatch)
	}
	if adv.ID != "" && v.meta.ID != "" && adv.ID != v.meta.ID {
		return fmt.Errorf("%w: advanced record %q against volume %q", ErrPageMismatch, adv.ID, v.meta.ID)
	}
	if len(adv.Pages) != len(v.pages) {
		return fmt.Errorf("%w: advanced record has %d pages, volume has %d", ErrPageMismatch, len(adv.Pages), len(v.pages))
	}
	for i, ap := range adv.Pages {
		if ap.Seq != v.pages[i].Seq {
			return fmt.Errorf("%w: page %d has seq %d, advanced record has seq %d", ErrPageMismatch, i, v.pages[i].Seq, ap.Seq)
		}
	}
	for i, ap := range adv.Pages {
		rec := v.pages[i]
		mergeSection(&rec.Header, ap.Header)
		mergeSection(&rec.Body, ap.Body)
		mergeSection(&rec.Footer, ap.Footer)
	}
	v.advanced = true
	v.cache = make(map[TableConfig]*CountTable)
	return nil
}

func mergeSection(f *SectionFeatures, adv AdvancedSection) {
	f.EndLineChars = adv.EndLineChars
	f.CapAlphaSeq = adv.CapAlphaSeq
	if f.BeginLineChars == nil {
		f.BeginLineChars = adv.BeginLineChars
	}
	f.HasAdvanced = true
}

// FetchMetadata retrieves the volume's bibliographic record from the
// external catalog via the supplied client, keyed by the volume's catalog
// id. The call is explicit and cancellable through ctx; it is never issued
// implicitly, and its failure leaves every local feature query fully
// functional. The first successful result is memoized; failures are not.
func (v *Volume) FetchMetadata(ctx context.Context, client CatalogClient) (CatalogRecord, error) {
	if v.catalogRec != nil {
		return v.catalogRec, nil
	}
	if client == nil {
		return nil, fmt.Errorf("%w: no catalog client configured", ErrMetadataUnavailable)
	}
	rec, err := client.Fetch(ctx, v.meta.CatalogID)
	if err != nil {
		if errors.Is(err, ErrMetadataUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrMetadataUnavailable, err)
	}
	v.catalogRec = rec
	return rec, nil
}

// Validate cross-checks each page's declared section token counts against
// the sum of its token entries and reports every disagreement. A non-empty
// result indicates a data-quality problem in the source record, not a
// query error; the volume remains usable.
func (v *Volume) Validate() []error {
	var problems []error
	for _, rec := range v.pages {
		for _, s := range concreteSections {
			f := rec.features(s)
			sum := 0
			for _, entry := range f.TokenPos {
				sum += entry.Count
			}
			if sum != f.TokenCount {
				problems = append(problems, fmt.Errorf(
					"page %d %s section: declared %d tokens, entries sum to %d",
					rec.Seq, s, f.TokenCount, sum))
			}
		}
	}
	return problems
}
