package reader

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/tsawler/folio/model"
)

// The records are multi-megabyte JSON documents; jsoniter keeps decode
// throughput reasonable while staying stdlib-compatible.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Recognized schema versions.
const (
	Version2 = "2.0"
	Version3 = "3.0"
)

var (
	// ErrMalformedRecord is returned when a record is missing required
	// top-level fields or cannot be decoded at all.
	ErrMalformedRecord = errors.New("folio: malformed feature record")

	// ErrUnsupportedVersion is returned when the record declares a schema
	// version outside the recognized set.
	ErrUnsupportedVersion = errors.New("folio: unsupported schema version")
)

// Open parses the primary feature file at path into a Volume.
func Open(path string) (*model.Volume, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open record: %w", err)
	}
	defer file.Close()

	vol, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return vol, nil
}

// Parse decodes a primary feature record from r, decompressing as needed,
// and normalizes it into a Volume.
func Parse(r io.Reader) (*model.Volume, error) {
	env, err := decodeEnvelope(r)
	if err != nil {
		return nil, err
	}
	meta, pages, err := env.normalize()
	if err != nil {
		return nil, err
	}
	return model.NewVolume(meta, pages), nil
}

// OpenAdvanced parses the advanced feature file at path.
func OpenAdvanced(path string) (*model.AdvancedRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open advanced record: %w", err)
	}
	defer file.Close()

	rec, err := ParseAdvanced(file)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return rec, nil
}

// ParseAdvanced decodes an advanced feature record from r.
func ParseAdvanced(r io.Reader) (*model.AdvancedRecord, error) {
	env, err := decodeEnvelope(r)
	if err != nil {
		return nil, err
	}
	return env.normalizeAdvanced()
}

// decodeEnvelope decompresses, decodes and version-checks one record.
func decodeEnvelope(r io.Reader) (*rawEnvelope, error) {
	plain, err := decompress(r)
	if err != nil {
		return nil, err
	}
	var env rawEnvelope
	if err := json.NewDecoder(plain).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	switch v := env.version(); v {
	case Version2, Version3:
	case "":
		return nil, fmt.Errorf("%w: missing schema version", ErrMalformedRecord)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, v)
	}
	return &env, nil
}

// Magic bytes for the supported transports.
var (
	gzipMagic  = []byte{0x1f, 0x8b}
	bzip2Magic = []byte("BZh")
)

// decompress sniffs the stream's leading bytes and wraps r in the matching
// decompressor. Streams without a recognized magic are passed through as
// plain text.
func decompress(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(3)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read record header: %w", err)
	}
	switch {
	case bytes.HasPrefix(head, gzipMagic):
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("%w: bad gzip stream: %v", ErrMalformedRecord, err)
		}
		return gz, nil
	case bytes.HasPrefix(head, bzip2Magic):
		return bzip2.NewReader(br), nil
	default:
		return br, nil
	}
}
