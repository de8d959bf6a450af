package reader

import (
	"fmt"

	"github.com/tsawler/folio/model"
)

// normalizeAdvanced maps a decoded envelope onto the advanced-record shape.
// Advanced files share the primary envelope but carry a different field set
// per section (endCharCount, capAlphaSeq, sometimes richer beginCharCount).
func (env *rawEnvelope) normalizeAdvanced() (*model.AdvancedRecord, error) {
	if env.identifier() == "" {
		return nil, fmt.Errorf("%w: missing volume identifier", ErrMalformedRecord)
	}
	if env.Features.Pages == nil {
		return nil, fmt.Errorf("%w: missing page list", ErrMalformedRecord)
	}
	rec := &model.AdvancedRecord{
		ID:    env.identifier(),
		Pages: make([]model.AdvancedPage, len(env.Features.Pages)),
	}
	for i, rp := range env.Features.Pages {
		rec.Pages[i] = model.AdvancedPage{
			Seq:    int(rp.Seq),
			Header: rp.Header.normalizeAdvanced(),
			Body:   rp.Body.normalizeAdvanced(),
			Footer: rp.Footer.normalizeAdvanced(),
		}
	}
	return rec, nil
}

func (rs *rawSection) normalizeAdvanced() model.AdvancedSection {
	if rs == nil {
		return model.AdvancedSection{}
	}
	return model.AdvancedSection{
		BeginLineChars: rs.BeginCharCount,
		EndLineChars:   rs.EndCharCount,
		CapAlphaSeq:    rs.CapAlphaSeq,
	}
}
