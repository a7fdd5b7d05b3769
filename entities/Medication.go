package entities

const (
	// DefaultMedicationName is used whenever no name could be extracted.
	DefaultMedicationName = "Medicamento"
	// ConsultSourceText is the recommendation shown when none could be extracted.
	ConsultSourceText = "Para informações detalhadas sobre a compatibilidade com a amamentação, consulte a fonte original."
)

// MedicationRecord is the normalized result of one detail lookup.
// RiskLevel and RiskText always come from the same RiskLevel.Label() call.
type MedicationRecord struct {
	Name           string             `json:"name"`
	RiskLevel      RiskLevel          `json:"riskLevel"`
	RiskText       string             `json:"riskText"`
	Recommendation string             `json:"recommendation"`
	Compatibility  string             `json:"compatibility,omitempty"`
	SourceURL      string             `json:"sourceUrl"`
	TermType       TermType           `json:"type"`
	Alternatives   []AlternativeEntry `json:"alternatives"`
}

// HasNoAlternatives reports whether the record carries exactly the sentinel entry.
func (m MedicationRecord) HasNoAlternatives() bool {
	return len(m.Alternatives) == 1 && m.Alternatives[0].IsSentinel()
}

// WithRisk returns a copy with both risk fields derived from level.
func (m MedicationRecord) WithRisk(level RiskLevel) MedicationRecord {
	m.RiskLevel = level
	m.RiskText = level.Label()
	return m
}

// Clone returns a copy that does not share the alternatives slice.
func (m MedicationRecord) Clone() MedicationRecord {
	alts := make([]AlternativeEntry, len(m.Alternatives))
	copy(alts, m.Alternatives)
	m.Alternatives = alts
	return m
}
