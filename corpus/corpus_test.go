package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/folio/reader"
)

const testRecord = `{
  "schemaVersion": "3.0",
  "htid": "%ID%",
  "metadata": {"title": "T", "pageCount": 1},
  "features": {
    "pages": [
      {"seq": 1, "body": {"tokenCount": 2, "lineCount": 1, "sentenceCount": 1,
        "tokenPosCount": {"the": {"DT": 2}}, "beginCharCount": {"t": 1}}}
    ]
  }
}`

const testAdvancedRecord = `{
  "schemaVersion": "3.0",
  "htid": "%ID%",
  "features": {
    "pages": [
      {"seq": 1, "body": {"capAlphaSeq": 1, "endCharCount": {".": 1}}}
    ]
  }
}`

func writeRecord(t *testing.T, dir, name, template, id string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	body := []byte(strings.ReplaceAll(template, "%ID%", id))
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// ============================================================================
// Loading
// ============================================================================

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeRecord(t, dir, "a.json", testRecord, "test.a")

	vol, err := Load(Location{Path: path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if vol.ID() != "test.a" {
		t.Errorf("ID = %q", vol.ID())
	}
	if vol.HasAdvanced() {
		t.Error("HasAdvanced() true without an advanced path")
	}
}

func TestLoadWithAdvanced(t *testing.T) {
	dir := t.TempDir()
	primary := writeRecord(t, dir, "a.json", testRecord, "test.a")
	advanced := writeRecord(t, dir, "a.advanced.json", testAdvancedRecord, "test.a")

	vol, err := Load(Location{Path: primary, AdvancedPath: advanced})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !vol.HasAdvanced() {
		t.Fatal("HasAdvanced() false after load with advanced path")
	}
	chars, err := vol.EndLineChars()
	if err != nil {
		t.Fatalf("EndLineChars: %v", err)
	}
	if chars["."] != 1 {
		t.Errorf("EndLineChars = %v", chars)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	primary := writeRecord(t, dir, "a.json", testRecord, "test.a")
	mismatched := writeRecord(t, dir, "b.advanced.json", testAdvancedRecord, "test.b")
	broken := writeRecord(t, dir, "broken.json", "not a record", "")

	if _, err := Load(Location{Path: broken}); !errors.Is(err, reader.ErrMalformedRecord) {
		t.Errorf("broken primary: error = %v, want ErrMalformedRecord", err)
	}
	if _, err := Load(Location{Path: primary, AdvancedPath: mismatched}); err == nil {
		t.Error("mismatched advanced record loaded without error")
	}
}

// ============================================================================
// Iteration
// ============================================================================

func TestIteratorAttachesErrorsPerItem(t *testing.T) {
	dir := t.TempDir()
	good1 := writeRecord(t, dir, "a.json", testRecord, "test.a")
	broken := writeRecord(t, dir, "broken.json", "{", "")
	good2 := writeRecord(t, dir, "b.json", testRecord, "test.b")

	it := FromPaths(good1, broken, good2).Iter()

	res, ok := it.Next()
	if !ok || res.Err != nil || res.Volume.ID() != "test.a" {
		t.Fatalf("item 1 = %+v, %v", res, ok)
	}

	res, ok = it.Next()
	if !ok {
		t.Fatal("iteration stopped at the broken item")
	}
	if res.Err == nil || res.Volume != nil {
		t.Fatalf("broken item = %+v, want attached error and nil volume", res)
	}
	if res.Location.Path != broken {
		t.Errorf("error attributed to %q, want %q", res.Location.Path, broken)
	}

	res, ok = it.Next()
	if !ok || res.Err != nil || res.Volume.ID() != "test.b" {
		t.Fatalf("item 3 = %+v, %v: sweep did not continue past the error", res, ok)
	}

	if _, ok := it.Next(); ok {
		t.Error("iterator yielded past the end")
	}
}

func TestIteratorReset(t *testing.T) {
	dir := t.TempDir()
	path := writeRecord(t, dir, "a.json", testRecord, "test.a")

	c := FromPaths(path)
	it := c.Iter()

	if _, ok := it.Next(); !ok {
		t.Fatal("first pass empty")
	}
	if _, ok := it.Next(); ok {
		t.Fatal("unexpected second item")
	}

	it.Reset()
	res, ok := it.Next()
	if !ok || res.Err != nil {
		t.Fatalf("after Reset: %+v, %v", res, ok)
	}

	// Independent iterators restart from the top.
	res, ok = c.Iter().Next()
	if !ok || res.Err != nil {
		t.Fatalf("fresh iterator: %+v, %v", res, ok)
	}
}

func TestEachStopsEarly(t *testing.T) {
	dir := t.TempDir()
	a := writeRecord(t, dir, "a.json", testRecord, "test.a")
	b := writeRecord(t, dir, "b.json", testRecord, "test.b")

	c := New(Location{Path: a}, Location{Path: b})
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}

	var seen int
	c.Each(func(res Result) bool {
		seen++
		return false
	})
	if seen != 1 {
		t.Errorf("Each visited %d items after an early stop, want 1", seen)
	}
}
