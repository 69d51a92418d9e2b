// Package report renders run summaries as aligned plain-text tables.
package report

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/nconklindev/shopmigrate/internal/types"
)

// Table is a two-or-more column text table. Widths are measured in terminal
// cells so Swedish and wide characters line up.
type Table struct {
	rows [][]string
}

// NewTable creates a table with an optional header row.
func NewTable(header ...string) *Table {
	t := &Table{}
	if len(header) > 0 {
		t.rows = append(t.rows, header)
	}
	return t
}

// AddRow appends a row.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Render returns the table with every column padded to its widest cell.
func (t *Table) Render() string {
	var widths []int
	for _, row := range t.rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	var sb strings.Builder
	for _, row := range t.rows {
		for i, cell := range row {
			if i > 0 {
				sb.WriteString("  ")
			}
			if i == len(row)-1 {
				sb.WriteString(cell)
				continue
			}
			sb.WriteString(runewidth.FillRight(cell, widths[i]))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary renders the counters of a conversion run.
func Summary(r *types.ConversionResult) string {
	t := NewTable()
	t.AddRow("Run", r.RunID)
	t.AddRow("Input", r.InputFile)
	t.AddRow("Output", r.OutputFile)
	t.AddRow("Mapping", r.Language)
	t.AddRow("Rows read", fmt.Sprint(r.RowsRead))
	t.AddRow("Products", fmt.Sprint(r.Products))
	t.AddRow("Main rows", fmt.Sprint(r.MainRows))
	t.AddRow("Variants", fmt.Sprint(r.Variants))
	t.AddRow("Images", fmt.Sprint(r.Images))
	t.AddRow("Groups written", fmt.Sprint(r.Groups))
	t.AddRow("Rows written", fmt.Sprint(r.RowsWritten))
	for _, kind := range slices.Sorted(maps.Keys(r.Skipped)) {
		t.AddRow("Skipped "+strings.ReplaceAll(kind, "_", " "), fmt.Sprint(r.Skipped[kind]))
	}
	if r.Warnings > 0 {
		t.AddRow("Warnings", fmt.Sprint(r.Warnings))
	}
	return t.Render()
}

// Preview renders the column mapping of a preview.
func Preview(p *types.Preview) string {
	t := NewTable("Column", "Imported as")
	for _, m := range p.Mapped {
		t.AddRow(m.Source, m.Target)
	}
	for _, u := range p.Unmapped {
		t.AddRow(u, "-")
	}
	return t.Render()
}
