package lookup

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/giygas/lactancia-api/entities"
)

//go:embed fallback.yaml
var fallbackYAML []byte

type fallbackAlternative struct {
	Name        string `yaml:"name"`
	URL         string `yaml:"url"`
	Description string `yaml:"description"`
}

type fallbackEntry struct {
	Name           string                `yaml:"name"`
	RiskLevel      string                `yaml:"riskLevel"`
	Type           string                `yaml:"type"`
	SourceURL      string                `yaml:"sourceUrl"`
	Recommendation string                `yaml:"recommendation"`
	Compatibility  string                `yaml:"compatibility"`
	NoAlternatives string                `yaml:"noAlternatives"`
	Alternatives   []fallbackAlternative `yaml:"alternatives"`
}

// FallbackDB is a small offline set of records for common medications
type FallbackDB struct {
	records map[string]entities.MedicationRecord
}

// LoadFallbackDB parses the embedded fallback records
func LoadFallbackDB() (*FallbackDB, error) {
	return ParseFallbackDB(fallbackYAML)
}

// ParseFallbackDB parses fallback records from YAML keyed by query
func ParseFallbackDB(data []byte) (*FallbackDB, error) {
	var raw map[string]fallbackEntry
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse fallback records: %w", err)
	}

	db := &FallbackDB{records: make(map[string]entities.MedicationRecord, len(raw))}
	for key, e := range raw {
		kind := entities.TermType(e.Type)
		if e.Type == "" {
			kind = entities.TermProduct
		}
		if !kind.Valid() {
			return nil, fmt.Errorf("fallback record %q: unknown type %q", key, e.Type)
		}

		level := entities.RiskLevel(e.RiskLevel)
		if !level.Valid() {
			return nil, fmt.Errorf("fallback record %q: unknown risk level %q", key, e.RiskLevel)
		}

		alts := []entities.AlternativeEntry{}
		if e.NoAlternatives != "" {
			alts = append(alts, entities.NoAlternative(e.NoAlternatives))
		}
		for _, a := range e.Alternatives {
			alts = append(alts, entities.AlternativeEntry{Name: a.Name, URL: a.URL, Description: a.Description})
		}

		record := entities.MedicationRecord{
			Name:           e.Name,
			Recommendation: e.Recommendation,
			Compatibility:  e.Compatibility,
			SourceURL:      e.SourceURL,
			TermType:       kind,
			Alternatives:   alts,
		}
		db.records[normalizeKey(key)] = record.WithRisk(level)
	}
	return db, nil
}

// Find returns the fallback record for query, if any
func (db *FallbackDB) Find(query string) (entities.MedicationRecord, bool) {
	if db == nil {
		return entities.MedicationRecord{}, false
	}
	record, ok := db.records[normalizeKey(query)]
	if !ok {
		return entities.MedicationRecord{}, false
	}
	return record.Clone(), true
}

func (db *FallbackDB) Len() int {
	if db == nil {
		return 0
	}
	return len(db.records)
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
