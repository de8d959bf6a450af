package folio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tsawler/folio/model"
	"github.com/tsawler/folio/reader"
)

const testRecord = `{
  "schemaVersion": "3.0",
  "htid": "test.vol1",
  "metadata": {"title": "A Test Volume", "pubDate": "1918", "pageCount": 1},
  "features": {
    "pages": [
      {"seq": 1,
       "header": {"tokenCount": 1, "lineCount": 1, "sentenceCount": 1,
         "tokenPosCount": {"Chapter": {"NN": 1}}, "beginCharCount": {"C": 1}},
       "body": {"tokenCount": 3, "lineCount": 2, "sentenceCount": 1,
         "tokenPosCount": {"the": {"DT": 2}, "cat": {"NN": 1}}, "beginCharCount": {"t": 1, "c": 1}}}
    ]
  }
}`

const testAdvanced = `{
  "schemaVersion": "3.0",
  "htid": "test.vol1",
  "features": {
    "pages": [
      {"seq": 1,
       "header": {"capAlphaSeq": 1, "endCharCount": {"r": 1}},
       "body": {"capAlphaSeq": 1, "endCharCount": {".": 1}}}
    ]
  }
}`

func writeFixture(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpenVolume(t *testing.T) {
	path := writeFixture(t, "test.vol1.json", testRecord)

	vol, err := Open(path).Volume()
	if err != nil {
		t.Fatalf("Volume: %v", err)
	}
	if vol.ID() != "test.vol1" {
		t.Errorf("ID = %q", vol.ID())
	}
	if vol.Year() != 1918 {
		t.Errorf("Year = %d, want 1918", vol.Year())
	}
	if got := vol.TermVolumeFreqs(false)["the"]; got != 2 {
		t.Errorf(`TermVolumeFreqs(false)["the"] = %d, want 2`, got)
	}
}

func TestOpenWithAdvanced(t *testing.T) {
	primary := writeFixture(t, "test.vol1.json", testRecord)
	advanced := writeFixture(t, "test.vol1.advanced.json", testAdvanced)

	vol, err := Open(primary).WithAdvanced(advanced).Volume()
	if err != nil {
		t.Fatalf("Volume: %v", err)
	}
	if !vol.HasAdvanced() {
		t.Fatal("HasAdvanced() = false")
	}
	chars, err := vol.EndLineChars()
	if err != nil {
		t.Fatalf("EndLineChars: %v", err)
	}
	if chars["."] != 1 {
		t.Errorf("EndLineChars = %v", chars)
	}
}

func TestOpenDefaultSection(t *testing.T) {
	path := writeFixture(t, "test.vol1.json", testRecord)

	vol, err := Open(path).DefaultSection(model.Group).Volume()
	if err != nil {
		t.Fatalf("Volume: %v", err)
	}
	if vol.DefaultSection() != model.Group {
		t.Errorf("DefaultSection = %v, want group", vol.DefaultSection())
	}
	// Group default folds the header into per-page totals.
	if got := vol.TokensPerPage()[1]; got != 4 {
		t.Errorf("TokensPerPage()[1] = %d, want 4", got)
	}
}

func TestOpenPropagatesParseErrors(t *testing.T) {
	path := writeFixture(t, "bad.json", "{")

	_, err := Open(path).Volume()
	if !errors.Is(err, reader.ErrMalformedRecord) {
		t.Errorf("error = %v, want ErrMalformedRecord", err)
	}
}

func TestMust(t *testing.T) {
	if got := Must(42, nil); got != 42 {
		t.Errorf("Must = %d, want 42", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("Must did not panic on error")
		}
	}()
	Must(0, errors.New("boom"))
}
