// Package folio provides a fluent API for reading extracted-features
// records: one compressed structured document per book volume, holding
// pre-tokenized page-level token and character counts.
//
// Basic usage:
//
//	vol, err := folio.Open("uc1.b312920.json.bz2").Volume()
//	if err != nil {
//	    // handle error
//	}
//	freqs := vol.TermVolumeFreqs(false)
//
// With options:
//
//	vol, err := folio.Open("uc1.b312920.json.bz2").
//	    WithAdvanced("uc1.b312920.advanced.json.bz2").
//	    DefaultSection(model.Group).
//	    Volume()
//
// For whole-corpus iteration, the corpus package walks a list of file
// locations yielding one volume at a time; for advanced use cases, the
// lower-level reader package is also available.
package folio

import (
	"github.com/tsawler/folio/model"
	"github.com/tsawler/folio/reader"
)

// Open prepares a Loader for the primary feature file at path. Nothing is
// read until a terminal operation like Volume() runs.
//
// Example:
//
//	vol, err := folio.Open("uc1.b312920.json.bz2").Volume()
func Open(path string) *Loader {
	return &Loader{path: path, section: model.Default}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	vol := folio.Must(folio.Open("uc1.b312920.json.bz2").Volume())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// Volume parses the configured files and returns the volume, merging the
// advanced record first when one was configured.
func (l *Loader) Volume() (*model.Volume, error) {
	vol, err := reader.Open(l.path)
	if err != nil {
		return nil, err
	}
	if l.advanced != "" {
		adv, err := reader.OpenAdvanced(l.advanced)
		if err != nil {
			return nil, err
		}
		if err := vol.MergeAdvanced(adv); err != nil {
			return nil, err
		}
	}
	if l.section != model.Default {
		if err := vol.SetDefaultSection(l.section); err != nil {
			return nil, err
		}
	}
	return vol, nil
}
