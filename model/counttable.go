package model

import "sort"

// TableConfig identifies one token-count aggregation. It is a comparable
// value type and serves as the cache key on Volume: two queries with equal
// configurations are the same aggregation.
type TableConfig struct {
	Section     Section
	CaseFold    bool // lower-case token text via Unicode case folding before aggregation
	CollapsePOS bool // drop the part-of-speech dimension, summing counts per token
}

// Key addresses one cell of a CountTable. POS is empty when the table was
// built with CollapsePOS. Section is always a concrete section: tables built
// for the All or Group views keep each entry under its own section label.
type Key struct {
	Page    int
	Section Section
	Token   string
	POS     string
}

// CountTable is a sparse token-count table keyed by (page, section, token,
// pos). Tables are built at page scope (one page's entries) and at volume
// scope (the merge of all pages, page identity preserved).
type CountTable struct {
	counts map[Key]int
	keys   []Key // sorted; built lazily, reset by mutation
}

// NewCountTable returns an empty table.
func NewCountTable() *CountTable {
	return &CountTable{counts: make(map[Key]int)}
}

// Add increments the cell at k by n.
func (t *CountTable) Add(k Key, n int) {
	t.counts[k] += n
	t.keys = nil
}

// Get returns the count at k, zero if absent.
func (t *CountTable) Get(k Key) int {
	return t.counts[k]
}

// Len returns the number of non-zero cells.
func (t *CountTable) Len() int {
	return len(t.counts)
}

// Total returns the sum of all cells.
func (t *CountTable) Total() int {
	total := 0
	for _, n := range t.counts {
		total += n
	}
	return total
}

// Keys returns every cell key ordered by (page, section, token, pos). The
// order is stable across repeated calls on an unchanged table.
func (t *CountTable) Keys() []Key {
	if t.keys == nil {
		t.keys = make([]Key, 0, len(t.counts))
		for k := range t.counts {
			t.keys = append(t.keys, k)
		}
		sort.Slice(t.keys, func(i, j int) bool {
			a, b := t.keys[i], t.keys[j]
			if a.Page != b.Page {
				return a.Page < b.Page
			}
			if a.Section != b.Section {
				return a.Section < b.Section
			}
			if a.Token != b.Token {
				return a.Token < b.Token
			}
			return a.POS < b.POS
		})
	}
	return t.keys
}

// Merge adds every cell of other into t.
func (t *CountTable) Merge(other *CountTable) {
	for k, n := range other.counts {
		t.counts[k] += n
	}
	t.keys = nil
}

// SlicePage returns a new table holding only the cells for the page with
// the given sequence number.
func (t *CountTable) SlicePage(seq int) *CountTable {
	out := NewCountTable()
	for k, n := range t.counts {
		if k.Page == seq {
			out.counts[k] = n
		}
	}
	return out
}

// SumSections collapses the section dimension, summing counts across the
// stored sections for each (page, token, pos). Cells in the result carry
// the Group label.
func (t *CountTable) SumSections() *CountTable {
	out := NewCountTable()
	for k, n := range t.counts {
		k.Section = Group
		out.counts[k] += n
	}
	return out
}

// Tokens returns the distinct token texts in the table, sorted.
func (t *CountTable) Tokens() []string {
	seen := make(map[string]struct{})
	for k := range t.counts {
		seen[k.Token] = struct{}{}
	}
	tokens := make([]string, 0, len(seen))
	for tok := range seen {
		tokens = append(tokens, tok)
	}
	sort.Strings(tokens)
	return tokens
}

// SumByToken groups cells by token text, dropping page, section and pos,
// and sums the counts.
func (t *CountTable) SumByToken() map[string]int {
	out := make(map[string]int)
	for k, n := range t.counts {
		out[k.Token] += n
	}
	return out
}
