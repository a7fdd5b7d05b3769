package entities

import (
	"fmt"
	"strings"
)

// TermType classifies a matched search result. The string value is the
// wire value used by e-lactancia in URLs and search payloads.
type TermType string

const (
	TermProduct  TermType = "producto"
	TermSynonym  TermType = "sinonimo"
	TermBrand    TermType = "marca"
	TermSpelling TermType = "escritura"
)

var termLabels = map[TermType]string{
	TermProduct:  "Medicamento",
	TermSynonym:  "Sinônimo",
	TermBrand:    "Marca",
	TermSpelling: "Escritura",
}

var termAliases = map[string]TermType{
	"producto":  TermProduct,
	"product":   TermProduct,
	"sinonimo":  TermSynonym,
	"synonym":   TermSynonym,
	"marca":     TermBrand,
	"brand":     TermBrand,
	"escritura": TermSpelling,
	"spelling":  TermSpelling,
}

// Valid reports whether t is one of the four known term kinds.
func (t TermType) Valid() bool {
	_, ok := termLabels[t]
	return ok
}

// Label returns the display label shown next to a result.
func (t TermType) Label() string {
	if label, ok := termLabels[t]; ok {
		return label
	}
	return termLabels[TermProduct]
}

// ParseTermType accepts either the wire value or the English name.
func ParseTermType(s string) (TermType, error) {
	if t, ok := termAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return t, nil
	}
	return "", fmt.Errorf("unknown term type: %q", s)
}
