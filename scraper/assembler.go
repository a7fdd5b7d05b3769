package scraper

import (
	"fmt"

	"github.com/giygas/lactancia-api/entities"
)

// DefaultDetailSearchBase is the public detail search page every record links back to
const DefaultDetailSearchBase = "https://e-lactancia.org/buscar/"

// Assembler turns extracted fields plus request metadata into a record
type Assembler struct {
	DetailSearchBase string
}

func NewAssembler(detailSearchBase string) *Assembler {
	if detailSearchBase == "" {
		detailSearchBase = DefaultDetailSearchBase
	}
	return &Assembler{DetailSearchBase: detailSearchBase}
}

// SourceURL returns the detail search URL for id and kind
func (a *Assembler) SourceURL(id string, kind entities.TermType) string {
	return fmt.Sprintf("%s?term_id=%s&term_type=%s", a.DetailSearchBase, id, kind)
}

// Assemble builds the record. A nil fields value means the detail page could
// not be fetched and only fallbackName and the defaults are used.
func (a *Assembler) Assemble(fields *ExtractedFields, id string, kind entities.TermType, fallbackName string) entities.MedicationRecord {
	if fields == nil {
		d := defaults()
		d.Name = fallbackName
		fields = &d
	}

	name := fields.Name
	if name == "" {
		name = fallbackName
	}
	if name == "" {
		name = entities.DefaultMedicationName
	}

	alts := make([]entities.AlternativeEntry, len(fields.Alternatives))
	copy(alts, fields.Alternatives)

	record := entities.MedicationRecord{
		Name:           name,
		Recommendation: fields.Recommendation,
		Compatibility:  fields.Compatibility,
		SourceURL:      a.SourceURL(id, kind),
		TermType:       kind,
		Alternatives:   alts,
	}
	if record.Recommendation == "" {
		record.Recommendation = entities.ConsultSourceText
	}

	level := fields.RiskLevel
	if level == "" {
		level = entities.RiskUnknown
	}
	return record.WithRisk(level)
}
