package verify

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "Title,URL handle,Description,Tags,SKU,Product image URL\n"

func TestRead_CleanFile(t *testing.T) {
	in := header +
		"Shoe,shoe,Nice,Skor,,https://a.se/1.jpg\n" +
		",shoe,,,,https://a.se/2.jpg\n" +
		",shoe,,,S-2,\n" +
		"Boot,boot,,,B-1,\n"

	r, err := Read(strings.NewReader(in), Options{})
	require.NoError(t, err)

	assert.True(t, r.OK())
	assert.Equal(t, 4, r.Rows)
	assert.Equal(t, 2, r.Products)
	assert.Equal(t, 2, r.Handles)
}

func TestRead_FindsProblems(t *testing.T) {
	var b strings.Builder
	b.WriteString("\uFEFF" + header)
	b.WriteString("Shoe,shoe,Nice,,,\n")
	b.WriteString("Shoe again,shoe,,Skor,,\n")
	b.WriteString("Short,row\n")
	for i := range 4 {
		fmt.Fprintf(&b, ",pad,,,P-%d,\n", i)
	}

	r, err := Read(strings.NewReader(b.String()), Options{MaxVariants: 3})
	require.NoError(t, err)

	assert.False(t, r.OK())
	assert.Equal(t, []Mismatch{{Line: 4, Got: 2, Want: 6}}, r.Mismatches)
	assert.Equal(t, []Duplicate{{Handle: "shoe", Count: 2}}, r.Duplicates)
	assert.Equal(t, []Oversized{{Handle: "pad", Variants: 4}}, r.Oversized)
}

func TestRead_MissingColumn(t *testing.T) {
	_, err := Read(strings.NewReader("Title,SKU\nA,B\n"), Options{})
	require.ErrorIs(t, err, ErrMissingColumn)

	_, err = Read(strings.NewReader(""), Options{})
	require.Error(t, err)
}

func TestFile_Semicolon(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("Title;URL handle\nA;a\n"), 0644))

	r, err := File(path, Options{Delimiter: ';'})
	require.NoError(t, err)
	assert.Equal(t, path, r.File)
	assert.True(t, r.OK())

	_, err = File(filepath.Join(t.TempDir(), "missing.csv"), Options{})
	assert.Error(t, err)
}
