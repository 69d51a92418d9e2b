// Package partition splits an aggregated product into import groups: each
// group is a synthetic product with its own handle and at most MaxVariants
// variant rows.
package partition

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/nconklindev/shopmigrate/internal/catalog"
	"github.com/nconklindev/shopmigrate/internal/handle"
	"github.com/nconklindev/shopmigrate/internal/normalizer"
	"github.com/nconklindev/shopmigrate/internal/schema"
)

// ErrNoMain is returned for a product without a main row.
var ErrNoMain = errors.New("product has no main row")

// DefaultFootSizeOption is the option name that turns on size bucketing.
const DefaultFootSizeOption = "Foot Size"

// Group is one exported product record.
type Group struct {
	Handle string
	Head   schema.Row
	// Images are the product images after the first, one row each.
	Images []string
	Body   []schema.Row
}

// Rows returns the number of variant rows in g, head included.
func (g *Group) Rows() int {
	return 1 + len(g.Body)
}

// Options configures a Partitioner. Zero values pick the defaults.
type Options struct {
	MaxVariants    int
	VariantFields  []string
	FootSizeOption string
}

// Partitioner turns products into groups, drawing handles from a shared
// Allocator. Products must be passed in a fixed order for the handles to be
// reproducible.
type Partitioner struct {
	alloc *handle.Allocator
	opts  Options
}

// New creates a Partitioner.
func New(alloc *handle.Allocator, opts Options) *Partitioner {
	if opts.MaxVariants <= 0 || opts.MaxVariants > schema.MaxGroupRows {
		opts.MaxVariants = schema.MaxGroupRows
	}
	if opts.VariantFields == nil {
		opts.VariantFields = schema.VariantFields
	}
	if opts.FootSizeOption == "" {
		opts.FootSizeOption = DefaultFootSizeOption
	}
	return &Partitioner{alloc: alloc, opts: opts}
}

type bucket struct {
	name     string
	variants []schema.Row
}

// Partition builds the groups for p.
//
// The first variant is folded into a copy of the main row, which then serves
// as the template for every group. The remaining variants are bucketed by
// foot size and paged; every page becomes a group headed by its first
// variant. A product that yields no pages is written as a single group.
func (pt *Partitioner) Partition(p *catalog.Product) ([]Group, error) {
	if p.Main == nil {
		return nil, fmt.Errorf("%s: %w", p.Handle, ErrNoMain)
	}

	template := p.Main.Clone()
	variants := p.Variants
	if len(variants) > 0 {
		first := variants[0]
		variants = variants[1:]
		template.CopyFrom(&first, pt.opts.VariantFields)
		if img := normalizer.FirstImage(first.ProductImage); img != "" {
			template.VariantImage = img
		}
	}

	sized, fallback := pt.bucketize(variants)

	var groups []Group
	for _, b := range sized {
		for i, chunk := range pages(b.variants, pt.opts.MaxVariants) {
			base := p.Handle + "-" + b.name
			if i > 0 {
				base = fmt.Sprintf("%s-%d", base, i+1)
			}
			groups = append(groups, pt.group(p, &template, chunk, base, template.Title))
		}
	}
	for i, chunk := range pages(fallback, pt.opts.MaxVariants) {
		base, title := p.Handle, template.Title
		if i > 0 {
			base = fmt.Sprintf("%s-%d", base, i+1)
			title = fmt.Sprintf("%s - %d", title, i+1)
		}
		groups = append(groups, pt.group(p, &template, chunk, base, title))
	}

	if len(groups) == 0 {
		head := template.Clone()
		head.Handle = pt.alloc.Allocate(p.Handle)
		withImages(&head, p.Images)
		groups = append(groups, Group{Handle: head.Handle, Head: head, Images: extraImages(p.Images)})
	}

	return groups, nil
}

// bucketize splits variants into foot-size buckets, in the order each bucket
// is first seen, and the fallback list.
func (pt *Partitioner) bucketize(variants []schema.Row) ([]*bucket, []schema.Row) {
	var (
		sized    []*bucket
		byName   = make(map[string]*bucket)
		fallback []schema.Row
	)

	for _, v := range variants {
		name, ok := pt.footSize(&v)
		if !ok {
			fallback = append(fallback, v)
			continue
		}
		b, seen := byName[name]
		if !seen {
			b = &bucket{name: name}
			byName[name] = b
			sized = append(sized, b)
		}
		b.variants = append(b.variants, v)
	}

	return sized, fallback
}

// footSize scans the option slots in order and returns the bucket of the
// first foot-size option whose value maps to one.
func (pt *Partitioner) footSize(v *schema.Row) (string, bool) {
	for _, o := range v.Options {
		if !strings.Contains(o.Name, pt.opts.FootSizeOption) {
			continue
		}
		if name, ok := FootSizeBucket(o.Value); ok {
			return name, true
		}
	}
	return "", false
}

func (pt *Partitioner) group(p *catalog.Product, template *schema.Row, chunk []schema.Row, base, title string) Group {
	h := pt.alloc.Allocate(base)

	first := &chunk[0]
	head := template.Clone()
	head.CopyFrom(first, pt.opts.VariantFields)
	head.Options = first.Options
	head.Handle = h
	head.Title = title
	withImages(&head, p.Images)

	body := make([]schema.Row, 0, len(chunk)-1)
	for _, v := range chunk[1:] {
		row := v.Clone()
		row.Handle = h
		row.VariantImage = normalizer.FirstImage(v.ProductImage)
		if row.VariantImage == "" && len(p.Images) > 0 {
			row.VariantImage = p.Images[0]
		}
		for _, col := range schema.DescriptiveFields {
			row.Clear(col)
		}
		body = append(body, row)
	}

	return Group{Handle: h, Head: head, Images: extraImages(p.Images), Body: body}
}

func withImages(r *schema.Row, images []string) {
	if len(images) == 0 {
		return
	}
	r.ProductImage = images[0]
	r.VariantImage = images[0]
}

func extraImages(images []string) []string {
	if len(images) < 2 {
		return nil
	}
	return images[1:]
}

// pages cuts rows into consecutive slices of at most size elements.
func pages(rows []schema.Row, size int) [][]schema.Row {
	return slices.Collect(slices.Chunk(rows, size))
}
