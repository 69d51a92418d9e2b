// Package catalog groups normalized rows into products: one main row, its
// variants and its images per base handle.
package catalog

import (
	"fmt"
	"strings"

	"github.com/nconklindev/shopmigrate/internal/handle"
	"github.com/nconklindev/shopmigrate/internal/normalizer"
	"github.com/nconklindev/shopmigrate/internal/schema"
)

// emptyOption stands in for a blank option value in a VariantKey.
const emptyOption = "N/A"

// VariantKey identifies a variant within its product.
type VariantKey struct {
	Option1 string
	Option2 string
	Option3 string
	SKU     string
}

// KeyOf builds the VariantKey of r.
func KeyOf(r *schema.Row) VariantKey {
	opt := func(i int) string {
		if v := r.Options[i].Value; v != "" {
			return v
		}
		return emptyOption
	}
	return VariantKey{Option1: opt(0), Option2: opt(1), Option3: opt(2), SKU: r.SKU}
}

// Product is everything collected for one base handle.
type Product struct {
	Handle   string
	Main     *schema.Row
	Variants []schema.Row
	Images   []string

	seen map[VariantKey]struct{}
}

// Input is one classified, normalized row.
type Input struct {
	Line        int
	Kind        normalizer.Kind
	ProductType string
	Row         schema.Row
}

// Stats counts what the Aggregator accepted and skipped.
type Stats struct {
	Rows     int
	MainRows int
	Variants int
	Images   int
	Skipped  map[ErrorKind]int
}

// Aggregator collects rows into products in first-seen order.
type Aggregator struct {
	fallback string
	products []*Product
	index    map[string]*Product
	stats    Stats
}

// NewAggregator returns an Aggregator. Titles without any usable handle
// characters are filed under fallback.
func NewAggregator(fallback string) *Aggregator {
	return &Aggregator{
		fallback: fallback,
		index:    make(map[string]*Product),
		stats:    Stats{Skipped: make(map[ErrorKind]int)},
	}
}

// Add files one row. It returns a *RowError when the row was skipped or
// replaced an earlier main row, and nil otherwise.
func (a *Aggregator) Add(in Input) error {
	a.stats.Rows++

	row := in.Row
	base := handle.Base(row.Title)
	if base == "" {
		base = a.fallback
	}

	switch in.Kind {
	case normalizer.Main:
		return a.addMain(in.Line, base, row)
	case normalizer.Variant:
		return a.addVariant(in.Line, base, row)
	default:
		return a.skip(&RowError{
			Line:   in.Line,
			Kind:   UnrecognizedType,
			Handle: base,
			SKU:    row.SKU,
			Detail: fmt.Sprintf("product type %q", in.ProductType),
		})
	}
}

func (a *Aggregator) addMain(line int, base string, row schema.Row) error {
	p := a.product(base)
	replaced := p.Main != nil

	p.Main = &row
	a.stats.MainRows++
	if images := normalizer.SplitImages(row.ProductImage); len(images) > 0 {
		p.Images = images
		a.stats.Images += len(images)
	}

	if replaced {
		a.stats.Skipped[MainOverwritten]++
		return &RowError{
			Line:   line,
			Kind:   MainOverwritten,
			Handle: base,
			SKU:    row.SKU,
			Detail: fmt.Sprintf("main row %q replaces an earlier main row", row.Title),
		}
	}
	return nil
}

func (a *Aggregator) addVariant(line int, base string, row schema.Row) error {
	if strings.TrimSpace(row.SKU) == "" {
		return a.skip(&RowError{Line: line, Kind: MissingSKU, Handle: base, Detail: "variant row without SKU"})
	}

	p := a.product(base)
	if !row.OptionsEmpty() {
		key := KeyOf(&row)
		if _, dup := p.seen[key]; dup {
			return a.skip(&RowError{
				Line:   line,
				Kind:   DuplicateVariant,
				Handle: base,
				SKU:    row.SKU,
				Detail: fmt.Sprintf("options %s / %s / %s already present", key.Option1, key.Option2, key.Option3),
			})
		}
		p.seen[key] = struct{}{}
	}

	p.Variants = append(p.Variants, row)
	a.stats.Variants++
	return nil
}

func (a *Aggregator) product(base string) *Product {
	if p, ok := a.index[base]; ok {
		return p
	}
	p := &Product{Handle: base, seen: make(map[VariantKey]struct{})}
	a.index[base] = p
	a.products = append(a.products, p)
	return p
}

func (a *Aggregator) skip(err *RowError) error {
	a.stats.Skipped[err.Kind]++
	return err
}

// Finish returns the products that have a main row, in first-seen order,
// and one OrphanVariants error for every product that only has variants.
// Call it once, after the last Add.
func (a *Aggregator) Finish() ([]*Product, []*RowError) {
	products := make([]*Product, 0, len(a.products))
	var orphans []*RowError

	for _, p := range a.products {
		if p.Main == nil {
			orphans = append(orphans, &RowError{
				Kind:   OrphanVariants,
				Handle: p.Handle,
				Detail: fmt.Sprintf("%d variant(s) without a main row", len(p.Variants)),
			})
			a.stats.Skipped[OrphanVariants]++
			continue
		}
		products = append(products, p)
	}

	return products, orphans
}

// Stats returns the counters collected so far.
func (a *Aggregator) Stats() Stats {
	return a.stats
}
