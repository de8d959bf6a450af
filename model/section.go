package model

import "fmt"

// Section identifies a region of a page. Header, Body and Footer are stored
// sections. All and Group are query-only views: All keeps the per-section
// breakdown in a result, Group merges the three stored sections. Default
// resolves to the configured default section of the Page or Volume being
// queried.
type Section int

const (
	Default Section = iota
	Header
	Body
	Footer
	All
	Group
)

var sectionNames = map[Section]string{
	Default: "default",
	Header:  "header",
	Body:    "body",
	Footer:  "footer",
	All:     "all",
	Group:   "group",
}

// String returns the lower-case section name.
func (s Section) String() string {
	if name, ok := sectionNames[s]; ok {
		return name
	}
	return fmt.Sprintf("section(%d)", int(s))
}

// ParseSection converts a section name ("header", "body", "footer", "all",
// "group", "default") into a Section.
func ParseSection(name string) (Section, error) {
	for s, n := range sectionNames {
		if n == name {
			return s, nil
		}
	}
	return Default, fmt.Errorf("%w: unknown section %q", ErrInvalidSection, name)
}

// IsConcrete reports whether s is one of the three stored sections.
func (s Section) IsConcrete() bool {
	return s == Header || s == Body || s == Footer
}

// concreteSections is the resolution order for the All and Group views.
var concreteSections = [3]Section{Header, Body, Footer}

// resolve expands a section view into the stored sections it covers.
func (s Section) resolve() []Section {
	if s.IsConcrete() {
		return []Section{s}
	}
	return concreteSections[:]
}
