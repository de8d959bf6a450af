package reader

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"github.com/tsawler/folio/model"
)

// rawEnvelope is the decoded wire shape shared by both recognized schema
// versions. Version 3.0 carries htid and schemaVersion at the top level;
// version 2.0 carries id at the top level and schemaVersion under features.
type rawEnvelope struct {
	SchemaVersion string      `json:"schemaVersion"`
	HTID          string      `json:"htid"`
	ID            string      `json:"id"`
	Metadata      rawMetadata `json:"metadata"`
	Features      rawFeatures `json:"features"`
}

type rawMetadata struct {
	Title       string     `json:"title"`
	Language    string     `json:"language"`
	Imprint     string     `json:"imprint"`
	PubDate     flexString `json:"pubDate"`
	DateCreated flexString `json:"dateCreated"` // version 2.0 spelling
	Genre       genreList  `json:"genre"`
	PageCount   int        `json:"pageCount"`
	CatalogID   string     `json:"catalogId"`
}

type rawFeatures struct {
	SchemaVersion string    `json:"schemaVersion"`
	Pages         []rawPage `json:"pages"`
}

type rawPage struct {
	Seq    flexSeq     `json:"seq"`
	Header *rawSection `json:"header"`
	Body   *rawSection `json:"body"`
	Footer *rawSection `json:"footer"`
}

type rawSection struct {
	TokenCount     int                       `json:"tokenCount"`
	LineCount      int                       `json:"lineCount"`
	EmptyLineCount int                       `json:"emptyLineCount"`
	SentenceCount  int                       `json:"sentenceCount"`
	TokenPosCount  map[string]map[string]int `json:"tokenPosCount"`
	BeginCharCount map[string]int            `json:"beginCharCount"`
	EndCharCount   map[string]int            `json:"endCharCount"`
	CapAlphaSeq    int                       `json:"capAlphaSeq"`
}

// flexSeq decodes a page sequence number from either a JSON number or a
// zero-padded string ("00000012").
type flexSeq int

func (s *flexSeq) UnmarshalJSON(data []byte) error {
	text := strings.Trim(string(data), `"`)
	if text == "" || text == "null" {
		*s = 0
		return nil
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return fmt.Errorf("page seq %q: %w", text, err)
	}
	*s = flexSeq(n)
	return nil
}

// flexString decodes a field that some records carry as a string and others
// as a bare number (pubDate years, most commonly).
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	text := string(data)
	if text == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	*f = flexString(text)
	return nil
}

// genreList decodes a genre field that version 2.0 records may carry as a
// bare string instead of a list.
type genreList []string

func (g *genreList) UnmarshalJSON(data []byte) error {
	text := string(data)
	if text == "null" {
		*g = nil
		return nil
	}
	if strings.HasPrefix(text, "[") {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*g = list
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*g = []string{s}
	return nil
}

// version returns the declared schema version wherever the shape stores it.
func (env *rawEnvelope) version() string {
	if env.SchemaVersion != "" {
		return env.SchemaVersion
	}
	return env.Features.SchemaVersion
}

// identifier returns the volume identifier wherever the shape stores it.
func (env *rawEnvelope) identifier() string {
	if env.HTID != "" {
		return env.HTID
	}
	return env.ID
}

// normalize maps the decoded tree onto the canonical metadata and page
// shapes. The raw tree is not retained afterwards.
func (env *rawEnvelope) normalize() (model.Metadata, []*model.PageRecord, error) {
	meta, err := env.normalizeMetadata()
	if err != nil {
		return model.Metadata{}, nil, err
	}
	if env.Features.Pages == nil {
		return model.Metadata{}, nil, fmt.Errorf("%w: missing page list", ErrMalformedRecord)
	}
	pages := make([]*model.PageRecord, len(env.Features.Pages))
	for i, rp := range env.Features.Pages {
		pages[i] = &model.PageRecord{
			Seq:    int(rp.Seq),
			Header: rp.Header.normalize(),
			Body:   rp.Body.normalize(),
			Footer: rp.Footer.normalize(),
		}
	}
	return meta, pages, nil
}

func (env *rawEnvelope) normalizeMetadata() (model.Metadata, error) {
	id := env.identifier()
	if id == "" {
		return model.Metadata{}, fmt.Errorf("%w: missing volume identifier", ErrMalformedRecord)
	}

	pubDate := string(env.Metadata.PubDate)
	if env.version() == Version2 && env.Metadata.DateCreated != "" {
		pubDate = string(env.Metadata.DateCreated)
	}

	meta := model.Metadata{
		ID:            id,
		SchemaVersion: env.version(),
		Title:         env.Metadata.Title,
		Language:      env.Metadata.Language,
		LanguageTag:   language.Und,
		Imprint:       env.Metadata.Imprint,
		PubDate:       pubDate,
		Genre:         env.Metadata.Genre,
		PageCount:     env.Metadata.PageCount,
		CatalogID:     env.Metadata.CatalogID,
	}
	if tag, err := language.Parse(env.Metadata.Language); err == nil {
		meta.LanguageTag = tag
		meta.Language = tag.String()
	}
	return meta, nil
}

// normalize flattens the nested token->pos->count map into sorted entries.
// A missing section decodes to the zero SectionFeatures.
func (rs *rawSection) normalize() model.SectionFeatures {
	if rs == nil {
		return model.SectionFeatures{}
	}
	f := model.SectionFeatures{
		TokenCount:     rs.TokenCount,
		LineCount:      rs.LineCount,
		EmptyLineCount: rs.EmptyLineCount,
		SentenceCount:  rs.SentenceCount,
		BeginLineChars: rs.BeginCharCount,
	}
	if len(rs.TokenPosCount) > 0 {
		f.TokenPos = make([]model.TokenPosCount, 0, len(rs.TokenPosCount))
		for token, posCounts := range rs.TokenPosCount {
			for pos, count := range posCounts {
				f.TokenPos = append(f.TokenPos, model.TokenPosCount{Token: token, POS: pos, Count: count})
			}
		}
		sort.Slice(f.TokenPos, func(i, j int) bool {
			a, b := f.TokenPos[i], f.TokenPos[j]
			if a.Token != b.Token {
				return a.Token < b.Token
			}
			return a.POS < b.POS
		})
	}
	return f
}
