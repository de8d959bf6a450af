// Package reader parses compressed extracted-features records into model
// types.
//
// # Opening Records
//
// Use [Open] to parse a primary feature file from disk:
//
//	vol, err := reader.Open("uc1.b312920.json.bz2")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Or [Parse] to consume any io.Reader. The transport compression is sniffed
// from the leading magic bytes: gzip and bzip2 streams are decompressed
// transparently, anything else is read as plain JSON.
//
// # Schema Versions
//
// Two record shapes are recognized, schema versions 2.0 and 3.0. They
// differ in field spelling and layout (top-level id vs htid, the location
// of the schemaVersion field, genre as string vs list, pubDate vs
// dateCreated). Both normalize into the single model.Metadata /
// model.PageRecord shape at parse time; the raw decoded tree is not
// retained. A missing required field fails with [ErrMalformedRecord]; a
// declared version outside the recognized set fails with
// [ErrUnsupportedVersion] rather than a best-effort guess.
//
// # Advanced Records
//
// [OpenAdvanced] and [ParseAdvanced] read the optional secondary file
// carrying fields absent from the primary record (line-end characters,
// capitalized-sequence lengths). The result is merged into a parsed volume
// with model.Volume.MergeAdvanced.
package reader
