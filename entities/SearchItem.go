package entities

// SearchItem is one candidate returned by the remote search endpoint.
type SearchItem struct {
	ID          string
	Term        TermType
	NameEN      string
	NameES      string
	Name        string
	NameCountry string
}

// DisplayName returns the first non-empty of the English, Spanish, generic
// and per-country names.
func (s SearchItem) DisplayName() string {
	for _, n := range []string{s.NameEN, s.NameES, s.Name, s.NameCountry} {
		if n != "" {
			return n
		}
	}
	return ""
}

// Suggestion is a search candidate reduced to what a caller needs to pick it.
type Suggestion struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	TermType  TermType `json:"type"`
	TypeLabel string   `json:"typeLabel"`
}

// ToSuggestion builds the suggestion shown for the item
func (s SearchItem) ToSuggestion() Suggestion {
	return Suggestion{
		ID:        s.ID,
		Name:      s.DisplayName(),
		TermType:  s.Term,
		TypeLabel: s.Term.Label(),
	}
}

// SearchOutcome holds either a resolved medication or a list of candidates.
// Exactly one of the two is set.
type SearchOutcome struct {
	Medication  *MedicationRecord `json:"medication,omitempty"`
	Suggestions []Suggestion      `json:"suggestions,omitempty"`
}
