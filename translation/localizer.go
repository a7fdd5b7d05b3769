package translation

import (
	"context"

	"github.com/giygas/lactancia-api/entities"
	"github.com/giygas/lactancia-api/interfaces"
)

// Localizer translates the free-text fields of a record that still read
// like the source language.
type Localizer struct {
	translator interfaces.TextTranslator
	from, to   string
}

func NewLocalizer(translator interfaces.TextTranslator, from, to string) *Localizer {
	return &Localizer{translator: translator, from: from, to: to}
}

var _ interfaces.RecordLocalizer = (*Localizer)(nil)

// Localize returns a copy of record with compatibility, recommendation and
// alternative descriptions translated, one field at a time.
func (l *Localizer) Localize(ctx context.Context, record entities.MedicationRecord) entities.MedicationRecord {
	out := record.Clone()

	out.Compatibility = l.field(ctx, out.Compatibility)
	out.Recommendation = l.field(ctx, out.Recommendation)
	for i := range out.Alternatives {
		out.Alternatives[i].Description = l.field(ctx, out.Alternatives[i].Description)
	}

	return out
}

func (l *Localizer) field(ctx context.Context, text string) string {
	if text == "" || !LooksLikeSource(text) {
		return text
	}
	return l.translator.Translate(ctx, text, l.from, l.to)
}
