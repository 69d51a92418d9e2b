package normalizer

import (
	"strings"

	"github.com/nconklindev/shopmigrate/internal/mapping"
)

// Kind labels a raw input row.
type Kind int

// Row kinds.
const (
	Unrecognized Kind = iota
	Main
	Variant
)

func (k Kind) String() string {
	switch k {
	case Main:
		return "main"
	case Variant:
		return "variant"
	default:
		return "unrecognized"
	}
}

// ProductType returns the trimmed product type of a raw row.
func ProductType(raw map[string]string) string {
	v, _ := mapping.Lookup(raw, mapping.TypeColumns)
	return strings.TrimSpace(v)
}

// Classify labels a raw row by its product type. Simple and variable
// products are main rows, variations are variant rows.
func Classify(raw map[string]string) Kind {
	t := strings.ToLower(ProductType(raw))
	switch {
	case strings.Contains(t, "simple"), strings.Contains(t, "variable"):
		return Main
	case strings.Contains(t, "variation"):
		return Variant
	default:
		return Unrecognized
	}
}
