package commands

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/giygas/lactancia-api/entities"
)

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(out)
	return t
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func renderSuggestions(out io.Writer, suggestions []entities.Suggestion) {
	t := newTable(out)
	t.AppendHeader(table.Row{"#", "Nome", "Tipo", "Type", "ID"})
	for i, s := range suggestions {
		t.AppendRow(table.Row{strconv.Itoa(i + 1), s.Name, s.TypeLabel, string(s.TermType), s.ID})
	}
	t.Render()
}

func renderRecord(out io.Writer, record entities.MedicationRecord) {
	t := newTable(out)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 80, WidthMaxEnforcer: text.WrapSoft},
	})
	t.AppendRows([]table.Row{
		{"Nome", record.Name},
		{"Risco", record.RiskText},
		{"Tipo", record.TermType.Label()},
		{"Recomendação", record.Recommendation},
	})
	if record.Compatibility != "" {
		t.AppendRow(table.Row{"Compatibilidade", record.Compatibility})
	}
	t.AppendRow(table.Row{"Fonte", record.SourceURL})
	t.Render()

	if len(record.Alternatives) == 0 {
		return
	}

	alts := newTable(out)
	alts.SetTitle("Alternativas")
	alts.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 60, WidthMaxEnforcer: text.WrapSoft},
	})
	alts.AppendHeader(table.Row{"Nome", "Descrição", "URL"})
	for _, alt := range record.Alternatives {
		alts.AppendRow(table.Row{alt.Name, alt.Description, alt.URL})
	}
	alts.Render()
}
