// Package writer serializes partitioned groups as a product-import CSV.
package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"

	"github.com/nconklindev/shopmigrate/internal/partition"
	"github.com/nconklindev/shopmigrate/internal/schema"
)

const utf8BOM = "\uFEFF"

// Header returns the fixed column layout followed by any mapped target and
// then any defaulted column it does not already contain.
func Header(targets []string, defaults []schema.Default) []string {
	header := slices.Clone(schema.Columns)
	for _, t := range targets {
		if !slices.Contains(header, t) {
			header = append(header, t)
		}
	}
	for _, d := range defaults {
		if !slices.Contains(header, d.Column) {
			header = append(header, d.Column)
		}
	}
	return header
}

// Options configures a Writer.
type Options struct {
	Delimiter rune
	BOM       bool
}

// Writer writes groups against a fixed header.
type Writer struct {
	out    io.Writer
	csv    *csv.Writer
	header []string
	bom    bool
	rows   int
}

// New creates a Writer. A zero delimiter means comma.
func New(w io.Writer, header []string, opts Options) *Writer {
	cw := csv.NewWriter(w)
	if opts.Delimiter != 0 {
		cw.Comma = opts.Delimiter
	}
	return &Writer{out: w, csv: cw, header: header, bom: opts.BOM}
}

// WriteHeader writes the optional byte order mark and the header row.
func (w *Writer) WriteHeader() error {
	if w.bom {
		if _, err := io.WriteString(w.out, utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}
	if err := w.csv.Write(w.header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	return nil
}

// WriteGroup writes the head row, one row per extra image and then the body
// rows of g.
func (w *Writer) WriteGroup(g *partition.Group) error {
	if err := w.write(g.Head.Record(w.header)); err != nil {
		return fmt.Errorf("group %s: %w", g.Handle, err)
	}

	for _, img := range g.Images {
		if err := w.write(w.imageRecord(g.Handle, img)); err != nil {
			return fmt.Errorf("group %s: %w", g.Handle, err)
		}
	}

	for i := range g.Body {
		if err := w.write(g.Body[i].Record(w.header)); err != nil {
			return fmt.Errorf("group %s: %w", g.Handle, err)
		}
	}
	return nil
}

func (w *Writer) imageRecord(handle, image string) []string {
	rec := make([]string, len(w.header))
	for i, col := range w.header {
		switch col {
		case schema.ColHandle:
			rec[i] = handle
		case schema.ColProductImage:
			rec[i] = image
		}
	}
	return rec
}

func (w *Writer) write(rec []string) error {
	if err := w.csv.Write(rec); err != nil {
		return err
	}
	w.rows++
	return nil
}

// Flush writes any buffered data and reports the first write error.
func (w *Writer) Flush() error {
	w.csv.Flush()
	return w.csv.Error()
}

// Rows returns the number of data rows written so far.
func (w *Writer) Rows() int {
	return w.rows
}

// Header returns the header w writes against.
func (w *Writer) Header() []string {
	return w.header
}
