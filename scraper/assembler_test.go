package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/giygas/lactancia-api/entities"
)

func TestSourceURL(t *testing.T) {
	a := NewAssembler("")
	assert.Equal(t, "https://e-lactancia.org/buscar/?term_id=1234&term_type=sinonimo", a.SourceURL("1234", entities.TermSynonym))

	custom := NewAssembler("http://localhost:9000/buscar/")
	assert.Equal(t, "http://localhost:9000/buscar/?term_id=9&term_type=marca", custom.SourceURL("9", entities.TermBrand))
}

func TestAssembleWithoutFields(t *testing.T) {
	record := NewAssembler("").Assemble(nil, "42", entities.TermProduct, "Dipirona")

	assert.Equal(t, "Dipirona", record.Name)
	assert.Equal(t, entities.RiskUnknown, record.RiskLevel)
	assert.Equal(t, "Informação não disponível", record.RiskText)
	assert.Equal(t, entities.ConsultSourceText, record.Recommendation)
	assert.Empty(t, record.Compatibility)
	assert.Equal(t, "https://e-lactancia.org/buscar/?term_id=42&term_type=producto", record.SourceURL)
	assert.Equal(t, entities.TermProduct, record.TermType)
	assert.NotNil(t, record.Alternatives)
	assert.Empty(t, record.Alternatives)
}

func TestAssembleWithoutFieldsOrName(t *testing.T) {
	record := NewAssembler("").Assemble(nil, "42", entities.TermProduct, "")
	assert.Equal(t, entities.DefaultMedicationName, record.Name)
}

func TestAssembleCopiesFields(t *testing.T) {
	fields := &ExtractedFields{
		Name:           "Ibuprofen",
		RiskLevel:      entities.RiskVeryLow,
		Compatibility:  "Very low risk",
		Recommendation: "Safe.",
		Alternatives: []entities.AlternativeEntry{
			{Name: "Ibuprofeno", URL: "/a", Description: "x"},
			{Name: "Paracetamol", URL: "/b", Description: "y"},
		},
	}

	record := NewAssembler("").Assemble(fields, "1", entities.TermProduct, "ignored")

	assert.Equal(t, "Ibuprofen", record.Name)
	assert.Equal(t, "Muito Baixo Risco", record.RiskText)
	assert.Equal(t, "Very low risk", record.Compatibility)
	assert.Equal(t, []string{"Ibuprofeno", "Paracetamol"}, []string{record.Alternatives[0].Name, record.Alternatives[1].Name})

	// the record does not share the extractor's slice
	fields.Alternatives[0].Name = "changed"
	assert.Equal(t, "Ibuprofeno", record.Alternatives[0].Name)
}

func TestAssembleEmptyNameUsesFallback(t *testing.T) {
	record := NewAssembler("").Assemble(&ExtractedFields{}, "1", entities.TermSpelling, "Metamizol")

	assert.Equal(t, "Metamizol", record.Name)
	assert.Equal(t, entities.RiskUnknown, record.RiskLevel)
	assert.Equal(t, entities.ConsultSourceText, record.Recommendation)
	assert.NotNil(t, record.Alternatives)
}
