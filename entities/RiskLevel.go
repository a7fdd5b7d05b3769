package entities

// RiskLevel is the ordinal breastfeeding-safety classification of a medication.
type RiskLevel string

const (
	RiskVeryLow  RiskLevel = "very-low"
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskUnknown  RiskLevel = "unknown"
)

var riskLabels = map[RiskLevel]string{
	RiskVeryLow:  "Muito Baixo Risco",
	RiskLow:      "Baixo Risco",
	RiskModerate: "Risco Moderado",
	RiskHigh:     "Alto Risco",
	RiskUnknown:  "Informação não disponível",
}

// Label returns the fixed localized label for the level.
// Unrecognized levels get the unknown label.
func (r RiskLevel) Label() string {
	if label, ok := riskLabels[r]; ok {
		return label
	}
	return riskLabels[RiskUnknown]
}

// RiskLevelFromIndex maps the numeric suffix of a "risk-level<N>" class token.
func RiskLevelFromIndex(n string) RiskLevel {
	switch n {
	case "0":
		return RiskVeryLow
	case "1":
		return RiskLow
	case "2":
		return RiskModerate
	case "3":
		return RiskHigh
	default:
		return RiskUnknown
	}
}

// Valid reports whether r is one of the known levels
func (r RiskLevel) Valid() bool {
	_, ok := riskLabels[r]
	return ok
}
