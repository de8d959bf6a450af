package model

import "errors"

var (
	// ErrInvalidSection is returned when a query needs a concrete result
	// shape but was given a section view that cannot provide one, such as
	// asking for a scalar count over the All view.
	ErrInvalidSection = errors.New("folio: section not valid for this query")

	// ErrMissingAdvancedData is returned when a requested field exists only
	// in the advanced feature record and no advanced record has been merged.
	ErrMissingAdvancedData = errors.New("folio: field requires an advanced record merge")

	// ErrPageMismatch is returned when an advanced record's pages do not
	// correspond one-to-one, in order, with the primary record's pages.
	ErrPageMismatch = errors.New("folio: advanced record does not align with primary record")

	// ErrPageOutOfRange is returned for a page index outside the volume.
	ErrPageOutOfRange = errors.New("folio: page index out of range")

	// ErrMetadataUnavailable is returned when the external catalog lookup
	// fails or times out. It is always recoverable: local feature queries
	// are unaffected by its outcome.
	ErrMetadataUnavailable = errors.New("folio: catalog metadata unavailable")
)
