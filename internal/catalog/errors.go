package catalog

import (
	"fmt"
	"strings"
)

// ErrorKind classifies a row-level problem.
type ErrorKind int

// Row-level problems. None of them abort a run.
const (
	UnrecognizedType ErrorKind = iota
	MissingSKU
	DuplicateVariant
	MainOverwritten
	OrphanVariants
)

func (k ErrorKind) String() string {
	switch k {
	case UnrecognizedType:
		return "unrecognized_type"
	case MissingSKU:
		return "missing_sku"
	case DuplicateVariant:
		return "duplicate_variant"
	case MainOverwritten:
		return "main_overwritten"
	case OrphanVariants:
		return "orphan_variants"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// RowError describes a row that was skipped or needs attention. Line is the
// 1-based data row number, 0 when the problem belongs to a whole product.
type RowError struct {
	Line   int
	Kind   ErrorKind
	Handle string
	SKU    string
	Detail string
}

func (e *RowError) Error() string {
	var b strings.Builder
	if e.Line > 0 {
		fmt.Fprintf(&b, "row %d: ", e.Line)
	}
	b.WriteString(strings.ReplaceAll(e.Kind.String(), "_", " "))
	if e.Handle != "" {
		fmt.Fprintf(&b, " handle=%s", e.Handle)
	}
	if e.SKU != "" {
		fmt.Fprintf(&b, " sku=%s", e.SKU)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

// Skipped reports whether the row (or product) was left out of the output.
// A main-row overwrite is a warning only.
func (e *RowError) Skipped() bool {
	return e.Kind != MainOverwritten
}
