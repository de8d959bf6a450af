// Package corpus iterates a list of feature-file locations, yielding one
// parsed Volume at a time without holding the whole corpus in memory.
//
// A parse failure is attached to its item and never aborts the sweep, so an
// external dispatcher can skip or log bad volumes:
//
//	it := corpus.FromPaths(paths...).Iter()
//	for res, ok := it.Next(); ok; res, ok = it.Next() {
//	    if res.Err != nil {
//	        log.Printf("skipping %s: %v", res.Location.Path, res.Err)
//	        continue
//	    }
//	    process(res.Volume)
//	}
//
// For external parallel-map facilities, [Load] is the per-item transform:
// deterministic, side-effect free, and safe to call concurrently for
// distinct locations since each Volume owns its state exclusively.
package corpus

import (
	"fmt"

	"github.com/tsawler/folio/model"
	"github.com/tsawler/folio/reader"
)

// Location addresses one volume's files: the primary record and an
// optional advanced record.
type Location struct {
	Path         string
	AdvancedPath string
}

// Result pairs one location with its parsed volume or its error.
type Result struct {
	Location Location
	Volume   *model.Volume
	Err      error
}

// Load parses one location pair into a Volume, merging the advanced record
// when one is given. The merge happens before the volume is handed out, so
// no cache can predate it.
func Load(loc Location) (*model.Volume, error) {
	vol, err := reader.Open(loc.Path)
	if err != nil {
		return nil, err
	}
	if loc.AdvancedPath != "" {
		adv, err := reader.OpenAdvanced(loc.AdvancedPath)
		if err != nil {
			return nil, err
		}
		if err := vol.MergeAdvanced(adv); err != nil {
			return nil, fmt.Errorf("merge %s: %w", loc.AdvancedPath, err)
		}
	}
	return vol, nil
}

// Corpus is an ordered list of volume locations.
type Corpus struct {
	locs []Location
}

// New creates a Corpus over the given locations.
func New(locs ...Location) *Corpus {
	return &Corpus{locs: locs}
}

// FromPaths creates a Corpus of primary-only locations.
func FromPaths(paths ...string) *Corpus {
	locs := make([]Location, len(paths))
	for i, p := range paths {
		locs[i] = Location{Path: p}
	}
	return &Corpus{locs: locs}
}

// Len returns the number of locations.
func (c *Corpus) Len() int {
	return len(c.locs)
}

// Iter returns a fresh iterator over the corpus. Iterators are independent;
// obtaining a new one restarts the sweep.
func (c *Corpus) Iter() *Iterator {
	return &Iterator{c: c}
}

// Each calls fn for every location in order, loading volumes one at a time.
// Iteration stops early if fn returns false.
func (c *Corpus) Each(fn func(Result) bool) {
	it := c.Iter()
	for res, ok := it.Next(); ok; res, ok = it.Next() {
		if !fn(res) {
			return
		}
	}
}

// Iterator walks a Corpus one volume at a time.
type Iterator struct {
	c    *Corpus
	next int
}

// Next loads and returns the next item. The second return is false once the
// corpus is exhausted. Parse and merge failures are carried in Result.Err;
// iteration always continues past them.
func (it *Iterator) Next() (Result, bool) {
	if it.next >= len(it.c.locs) {
		return Result{}, false
	}
	loc := it.c.locs[it.next]
	it.next++

	vol, err := Load(loc)
	return Result{Location: loc, Volume: vol, Err: err}, true
}

// Reset rewinds the iterator to the first location.
func (it *Iterator) Reset() {
	it.next = 0
}
