package folio

import "github.com/tsawler/folio/model"

// Loader holds configuration for loading one volume. Configure it with the
// chained methods, then call a terminal operation like Volume().
type Loader struct {
	path     string
	advanced string
	section  model.Section
}

// WithAdvanced configures the matching advanced feature file. It is merged
// into the volume before the volume is returned, so no cache can predate
// the merge.
func (l *Loader) WithAdvanced(path string) *Loader {
	l.advanced = path
	return l
}

// DefaultSection sets the section used when queries pass model.Default.
// Without this option the default is model.Body.
func (l *Loader) DefaultSection(s model.Section) *Loader {
	l.section = s
	return l
}
