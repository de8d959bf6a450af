package model

// Page is a lightweight facade over one page record. Pages are created by
// Volume.Pages with a default section that queries use when given the
// Default section; the underlying record and caches stay owned by the
// Volume, which the Page references but never owns.
type Page struct {
	vol   *Volume
	rec   *PageRecord
	def   Section
	table *SectionTable
}

// Seq returns the page's sequence number in the source record.
func (p *Page) Seq() int {
	return p.rec.Seq
}

// DefaultSection returns the section used when a query passes Default.
func (p *Page) DefaultSection() Section {
	return p.def
}

// resolveSection substitutes the page's default for the Default view.
func (p *Page) resolveSection(s Section) Section {
	if s == Default {
		return p.def
	}
	return s
}

// Table returns the page's SectionTable, building it on first access.
func (p *Page) Table() *SectionTable {
	if p.table == nil {
		p.table = newSectionTable(p.rec)
		p.vol.tableBuilds++
	}
	return p.table
}

// TokenCount returns the declared token count for the given section
// (Default resolves to the page's default section).
func (p *Page) TokenCount(section Section) (int, error) {
	return p.Table().TokenCount(p.resolveSection(section))
}

// LineCount returns the line count for the given section.
func (p *Page) LineCount(section Section) (int, error) {
	return p.Table().LineCount(p.resolveSection(section))
}

// EmptyLineCount returns the empty-line count for the given section.
func (p *Page) EmptyLineCount(section Section) (int, error) {
	return p.Table().EmptyLineCount(p.resolveSection(section))
}

// SentenceCount returns the sentence count for the given section.
func (p *Page) SentenceCount(section Section) (int, error) {
	return p.Table().SentenceCount(p.resolveSection(section))
}

// LineBoundaryChars returns the boundary-character counts for the given
// section and edge. The end edge requires a prior advanced-record merge.
func (p *Page) LineBoundaryChars(section Section, edge Edge) (map[string]int, error) {
	return p.Table().LineBoundaryChars(p.resolveSection(section), edge)
}

// TokenList returns this page's count table for the configuration. If the
// owning Volume has already materialized a volume-wide table for the same
// configuration, the result is sliced from it rather than recomputed, which
// keeps page and volume views consistent by construction.
func (p *Page) TokenList(cfg TableConfig) *CountTable {
	cfg.Section = p.resolveSection(cfg.Section)
	if cached := p.vol.cachedTable(cfg); cached != nil {
		return cached.SlicePage(p.rec.Seq)
	}
	return p.localTable(cfg)
}

// localTable computes the page table directly from the record, bypassing
// the volume cache. The configuration's section must already be resolved.
func (p *Page) localTable(cfg TableConfig) *CountTable {
	p.vol.localComputes++
	return p.Table().TokenTable(cfg)
}

// Tokens returns the distinct token texts on this page's default section,
// sorted. The result is deduplicated and stable across repeated calls on
// an unchanged volume.
func (p *Page) Tokens() []string {
	return p.TokenList(TableConfig{Section: Default, CollapsePOS: true}).Tokens()
}
