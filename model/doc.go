// Package model provides the in-memory representation for extracted-features
// volumes.
//
// This package defines the user-facing data structures produced by parsing a
// feature record. All reading and aggregation operations ultimately produce
// these types, making them the primary API for consuming feature data.
//
// # Volume Structure
//
// The [Volume] type owns one book's metadata and its ordered page records:
//
//	vol := model.NewVolume(meta, pages)
//	for _, page := range vol.Pages() {
//	    count, _ := page.TokenCount()
//	}
//
// Each [Page] is a lightweight facade over one [PageRecord]; its derived
// views are built lazily on first access through a [SectionTable].
//
// # Sections
//
// Every page is divided into three stored sections (header, body, footer).
// Queries additionally accept two derived views: [All] keeps the per-section
// breakdown in the result, and [Group] merges the three stored sections.
// [Default] resolves to the configured default section (body unless changed).
//
// # Count Tables
//
// The [CountTable] type is a sparse table of token counts keyed by
// (page, section, token, part-of-speech). Tables exist at page scope and at
// volume scope; the volume-scope table is the merge of every page's table
// with page identity preserved in the key.
//
// # Caching
//
// Volume-level tables are memoized per [TableConfig]. Once a volume table
// exists for a configuration, page-level queries with the same configuration
// are served by slicing the cached table rather than recomputing, so page
// and volume views always agree. Merging an advanced record drops every
// cached table.
//
// # Concurrency
//
// A Volume and its Pages share no state with any other Volume; processing
// many volumes from independent workers needs no coordination. Within one
// Volume, cache-populating calls are not internally locked; callers sharing
// a single Volume across goroutines must serialize them.
package model
