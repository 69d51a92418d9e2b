package report

import (
	"strings"
	"testing"

	"github.com/nconklindev/shopmigrate/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_RenderAlignsWideRunes(t *testing.T) {
	tbl := NewTable("Column", "Target")
	tbl.AddRow("Vikt (kg)", "Weight value (grams)")
	tbl.AddRow("Fotstorlek", "Foot Size")
	tbl.AddRow("商品", "Title")

	lines := strings.Split(strings.TrimSuffix(tbl.Render(), "\n"), "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, "Column      Target", lines[0])
	assert.Equal(t, "Vikt (kg)   Weight value (grams)", lines[1])
	assert.Equal(t, "Fotstorlek  Foot Size", lines[2])
	assert.Equal(t, "商品        Title", lines[3])
}

func TestSummary(t *testing.T) {
	out := Summary(&types.ConversionResult{
		RunID:     "run-1",
		Language:  "sv",
		Products:  2,
		Groups:    3,
		Skipped:   map[string]int{"missing_sku": 1, "duplicate_variant": 2},
		Warnings:  1,
		RowsRead:  11,
		Variants:  6,
		InputFile: "export.csv",
	})

	assert.Contains(t, out, "Groups written"+strings.Repeat(" ", 13)+"3\n")
	assert.Contains(t, out, "Skipped duplicate variant  2")
	assert.Less(t, strings.Index(out, "duplicate variant"), strings.Index(out, "missing sku"))
	assert.Contains(t, out, "Warnings")
}

func TestPreview(t *testing.T) {
	out := Preview(&types.Preview{
		Mapped:   []types.MappedColumn{{Source: "Namn", Target: "Title"}},
		Unmapped: []string{"ID"},
	})

	assert.Equal(t, "Column  Imported as\nNamn    Title\nID      -\n", out)
}
