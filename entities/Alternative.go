package entities

// NoAlternativeName marks the sentinel entry used when the source page states
// that no alternatives exist. It is distinct from an empty alternatives list.
const NoAlternativeName = "Nenhuma alternativa disponível"

type AlternativeEntry struct {
	Name        string `json:"name"`
	URL         string `json:"url,omitempty"`
	Description string `json:"description"`
}

// NoAlternative builds the sentinel entry carrying the page's explanation.
func NoAlternative(description string) AlternativeEntry {
	return AlternativeEntry{Name: NoAlternativeName, Description: description}
}

// IsSentinel reports whether the entry is the "no alternatives" marker.
func (a AlternativeEntry) IsSentinel() bool {
	return a.Name == NoAlternativeName && a.URL == ""
}
