package model

import (
	"fmt"

	"golang.org/x/text/cases"
)

// Edge selects which end of a page's lines a boundary-character query
// refers to.
type Edge int

const (
	LineBegin Edge = iota
	LineEnd
)

// String returns "begin" or "end".
func (e Edge) String() string {
	if e == LineEnd {
		return "end"
	}
	return "begin"
}

// SectionTable is the per-page query surface over one PageRecord. It is
// built lazily by the owning Page on first access and derives scalar
// statistics and token tables from the raw record fields.
type SectionTable struct {
	rec *PageRecord
}

func newSectionTable(rec *PageRecord) *SectionTable {
	return &SectionTable{rec: rec}
}

// scalarSum resolves a section view for a scalar statistic: concrete
// sections read one stored section, Group sums the three stored sections,
// and All is rejected because a scalar cannot carry a per-section breakdown.
func (st *SectionTable) scalarSum(section Section, field func(*SectionFeatures) int) (int, error) {
	if section == All {
		return 0, fmt.Errorf("%w: scalar query needs a concrete section or group, got all", ErrInvalidSection)
	}
	total := 0
	for _, s := range section.resolve() {
		total += field(st.rec.features(s))
	}
	return total, nil
}

// TokenCount returns the declared token count for the section. Group sums
// header, body and footer; All fails with ErrInvalidSection.
func (st *SectionTable) TokenCount(section Section) (int, error) {
	return st.scalarSum(section, func(f *SectionFeatures) int { return f.TokenCount })
}

// LineCount returns the line count for the section, with the same section
// rules as TokenCount.
func (st *SectionTable) LineCount(section Section) (int, error) {
	return st.scalarSum(section, func(f *SectionFeatures) int { return f.LineCount })
}

// EmptyLineCount returns the empty-line count for the section.
func (st *SectionTable) EmptyLineCount(section Section) (int, error) {
	return st.scalarSum(section, func(f *SectionFeatures) int { return f.EmptyLineCount })
}

// SentenceCount returns the sentence count for the section.
func (st *SectionTable) SentenceCount(section Section) (int, error) {
	return st.scalarSum(section, func(f *SectionFeatures) int { return f.SentenceCount })
}

// CapAlphaSeq returns the longest capitalized alphabetic sequence for the
// section. The field comes from the advanced record; querying it before a
// merge fails with ErrMissingAdvancedData. Group returns the maximum over
// the three stored sections.
func (st *SectionTable) CapAlphaSeq(section Section) (int, error) {
	if section == All {
		return 0, fmt.Errorf("%w: scalar query needs a concrete section or group, got all", ErrInvalidSection)
	}
	longest := 0
	for _, s := range section.resolve() {
		f := st.rec.features(s)
		if !f.HasAdvanced {
			return 0, fmt.Errorf("%w: capAlphaSeq (page %d, %s section)", ErrMissingAdvancedData, st.rec.Seq, s)
		}
		if f.CapAlphaSeq > longest {
			longest = f.CapAlphaSeq
		}
	}
	return longest, nil
}

// TokenTable builds this page's count table for the given configuration.
// Group and All both produce the concatenation of the stored sections'
// entries, each cell keyed by its own section label; use
// CountTable.SumSections to collapse them. Case folding lower-cases token
// text before re-aggregation, so counts differing only by case are summed.
// Collapsing POS drops the tag dimension and sums counts per token.
func (st *SectionTable) TokenTable(cfg TableConfig) *CountTable {
	table := NewCountTable()
	folder := cases.Fold()
	for _, s := range cfg.Section.resolve() {
		for _, entry := range st.rec.features(s).TokenPos {
			k := Key{Page: st.rec.Seq, Section: s, Token: entry.Token}
			if cfg.CaseFold {
				k.Token = folder.String(entry.Token)
			}
			if !cfg.CollapsePOS {
				k.POS = entry.POS
			}
			table.Add(k, entry.Count)
		}
	}
	return table
}

// LineBoundaryChars returns the character-to-occurrence map for the given
// edge of the section's lines. Group unions the stored sections, summing
// counts; All fails with ErrInvalidSection. The end edge exists only in the
// advanced record and fails with ErrMissingAdvancedData before a merge.
func (st *SectionTable) LineBoundaryChars(section Section, edge Edge) (map[string]int, error) {
	if section == All {
		return nil, fmt.Errorf("%w: boundary-char query needs a concrete section or group, got all", ErrInvalidSection)
	}
	out := make(map[string]int)
	for _, s := range section.resolve() {
		f := st.rec.features(s)
		chars := f.BeginLineChars
		if edge == LineEnd {
			if !f.HasAdvanced {
				return nil, fmt.Errorf("%w: endLineChars (page %d, %s section)", ErrMissingAdvancedData, st.rec.Seq, s)
			}
			chars = f.EndLineChars
		}
		for ch, n := range chars {
			out[ch] += n
		}
	}
	return out, nil
}
