// Package verify checks a produced import file for problems the importer
// would reject or silently merge.
package verify

import (
	"cmp"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/nconklindev/shopmigrate/internal/mapping"
	"github.com/nconklindev/shopmigrate/internal/schema"
)

// ErrMissingColumn is returned when the file lacks a column the checks need.
var ErrMissingColumn = errors.New("required column missing")

// Options configures the checks.
type Options struct {
	Delimiter   rune
	MaxVariants int
}

// Mismatch is a row whose cell count differs from the header.
type Mismatch struct {
	Line int
	Got  int
	Want int
}

// Duplicate is a handle used by more than one product row.
type Duplicate struct {
	Handle string
	Count  int
}

// Oversized is a handle carrying more variant rows than allowed.
type Oversized struct {
	Handle   string
	Variants int
}

// Report is the outcome of checking one file.
type Report struct {
	File       string
	Rows       int
	Products   int
	Handles    int
	Mismatches []Mismatch
	Duplicates []Duplicate
	Oversized  []Oversized
}

// OK reports whether no problem was found.
func (r *Report) OK() bool {
	return len(r.Mismatches) == 0 && len(r.Duplicates) == 0 && len(r.Oversized) == 0
}

// File checks the import file at path.
func File(path string, opts Options) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	report, err := Read(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	report.File = path
	return report, nil
}

// Read checks an import file read from r.
func Read(r io.Reader, opts Options) (*Report, error) {
	if opts.MaxVariants <= 0 {
		opts.MaxVariants = schema.MaxGroupRows
	}

	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("file is empty")
	}
	if err != nil {
		return nil, err
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[mapping.CleanHeader(h)] = i
	}
	for _, col := range []string{schema.ColHandle, schema.ColTitle} {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	cell := func(rec []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	report := &Report{}
	mainHandles := make(map[string]int)
	variants := make(map[string]int)
	var order []string

	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		report.Rows++

		if len(rec) != len(header) {
			line, _ := reader.FieldPos(0)
			report.Mismatches = append(report.Mismatches, Mismatch{Line: line, Got: len(rec), Want: len(header)})
		}

		h := cell(rec, schema.ColHandle)
		if h == "" {
			continue
		}
		if _, seen := variants[h]; !seen {
			order = append(order, h)
			variants[h] = 0
		}
		if imageOnly(rec, idx) {
			continue
		}
		variants[h]++

		if cell(rec, schema.ColTitle) != "" {
			report.Products++
			if cell(rec, schema.ColDescription) != "" || cell(rec, schema.ColTags) != "" {
				mainHandles[h]++
			}
		}
	}

	report.Handles = len(order)
	for _, h := range order {
		if n := mainHandles[h]; n > 1 {
			report.Duplicates = append(report.Duplicates, Duplicate{Handle: h, Count: n})
		}
		if n := variants[h]; n > opts.MaxVariants {
			report.Oversized = append(report.Oversized, Oversized{Handle: h, Variants: n})
		}
	}
	slices.SortStableFunc(report.Duplicates, func(a, b Duplicate) int {
		return cmp.Compare(b.Count, a.Count)
	})

	return report, nil
}

// imageOnly reports whether rec carries nothing but a handle and an image.
func imageOnly(rec []string, idx map[string]int) bool {
	handleIdx, imageIdx := idx[schema.ColHandle], -1
	if i, ok := idx[schema.ColProductImage]; ok {
		imageIdx = i
	}
	for i, v := range rec {
		if i == handleIdx || i == imageIdx {
			continue
		}
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return imageIdx >= 0 && imageIdx < len(rec) && strings.TrimSpace(rec[imageIdx]) != ""
}
