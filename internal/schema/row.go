package schema

import "maps"

// Value is a typed cell that may be absent. An absent value is written as an
// empty cell; a present zero is written as "0" or "FALSE".
type Value[T any] struct {
	V     T
	Valid bool
}

// Some returns a present value.
func Some[T any](v T) Value[T] {
	return Value[T]{V: v, Valid: true}
}

// Option is one (name, value) attribute slot.
type Option struct {
	Name  string
	Value string
}

// Row is one normalized product or variant row.
//
// Columns the converter works with are named fields; anything else the
// mapping produces (Shipping Category, Google Shopping columns) lives in Extra.
type Row struct {
	Title       string
	Handle      string
	Description string
	Vendor      string
	Category    string
	Type        string
	Tags        string
	Published   string
	Status      string
	SKU         string
	Barcode     string
	Options     [3]Option

	Price         Value[float64]
	PriceIntl     Value[float64]
	CompareAt     Value[float64]
	CompareAtIntl Value[float64]
	Cost          Value[float64]

	ChargeTax        Value[bool]
	TaxCode          string
	InventoryPolicy  string
	InventoryQty     Value[int]
	ContinueSelling  Value[bool]
	Weight           Value[int]
	WeightUnit       string
	RequiresShipping Value[bool]
	Fulfillment      string

	ProductImage     string
	VariantImage     string
	GiftCard         Value[bool]
	SEODescription   string
	InventoryTracker string

	Extra map[string]string
}

// Get returns the serialized cell for col.
func (r *Row) Get(col string) string {
	if f, ok := fields[col]; ok {
		return f.get(r)
	}
	return r.Extra[col]
}

// Set coerces value to the column's type and stores it.
func (r *Row) Set(col, value string) {
	if f, ok := fields[col]; ok {
		f.set(r, value)
		return
	}
	if r.Extra == nil {
		r.Extra = make(map[string]string)
	}
	r.Extra[col] = value
}

// Has reports whether col carries a value. Text columns always do.
func (r *Row) Has(col string) bool {
	if f, ok := fields[col]; ok {
		return f.has(r)
	}
	_, ok := r.Extra[col]
	return ok
}

// Clear removes the value of col.
func (r *Row) Clear(col string) {
	if f, ok := fields[col]; ok {
		f.clear(r)
		return
	}
	delete(r.Extra, col)
}

// CopyFrom copies every listed column src carries onto r.
func (r *Row) CopyFrom(src *Row, cols []string) {
	for _, col := range cols {
		if !src.Has(col) {
			continue
		}
		if f, ok := fields[col]; ok {
			f.copy(r, src)
			continue
		}
		r.Set(col, src.Extra[col])
	}
}

// Clone returns a deep copy of r.
func (r *Row) Clone() Row {
	c := *r
	c.Extra = maps.Clone(r.Extra)
	return c
}

// Record serializes r against header.
func (r *Row) Record(header []string) []string {
	rec := make([]string, len(header))
	for i, col := range header {
		rec[i] = r.Get(col)
	}
	return rec
}

// OptionsEmpty reports whether all three option values are blank.
func (r *Row) OptionsEmpty() bool {
	for _, o := range r.Options {
		if o.Value != "" {
			return false
		}
	}
	return true
}

type field struct {
	get   func(*Row) string
	set   func(*Row, string)
	has   func(*Row) bool
	clear func(*Row)
	copy  func(dst, src *Row)
}

func text(p func(*Row) *string) field {
	return field{
		get:   func(r *Row) string { return *p(r) },
		set:   func(r *Row, s string) { *p(r) = s },
		has:   func(*Row) bool { return true },
		clear: func(r *Row) { *p(r) = "" },
		copy:  func(dst, src *Row) { *p(dst) = *p(src) },
	}
}

func typed[T any](p func(*Row) *Value[T], parse func(string) T, format func(T) string) field {
	return field{
		get: func(r *Row) string {
			v := p(r)
			if !v.Valid {
				return ""
			}
			return format(v.V)
		},
		set:   func(r *Row, s string) { *p(r) = Some(parse(s)) },
		has:   func(r *Row) bool { return p(r).Valid },
		clear: func(r *Row) { *p(r) = Value[T]{} },
		copy:  func(dst, src *Row) { *p(dst) = *p(src) },
	}
}

func number(p func(*Row) *Value[float64]) field { return typed(p, ParseFloat, FormatFloat) }
func integer(p func(*Row) *Value[int]) field    { return typed(p, ParseInt, FormatInt) }
func flag(p func(*Row) *Value[bool]) field      { return typed(p, ParseBool, FormatBool) }

var fields = map[string]field{
	ColTitle:       text(func(r *Row) *string { return &r.Title }),
	ColHandle:      text(func(r *Row) *string { return &r.Handle }),
	ColDescription: text(func(r *Row) *string { return &r.Description }),
	ColVendor:      text(func(r *Row) *string { return &r.Vendor }),
	ColCategory:    text(func(r *Row) *string { return &r.Category }),
	ColType:        text(func(r *Row) *string { return &r.Type }),
	ColTags:        text(func(r *Row) *string { return &r.Tags }),
	ColPublished:   text(func(r *Row) *string { return &r.Published }),
	ColStatus:      text(func(r *Row) *string { return &r.Status }),
	ColSKU:         text(func(r *Row) *string { return &r.SKU }),
	ColBarcode:     text(func(r *Row) *string { return &r.Barcode }),

	ColOption1Name:  text(func(r *Row) *string { return &r.Options[0].Name }),
	ColOption1Value: text(func(r *Row) *string { return &r.Options[0].Value }),
	ColOption2Name:  text(func(r *Row) *string { return &r.Options[1].Name }),
	ColOption2Value: text(func(r *Row) *string { return &r.Options[1].Value }),
	ColOption3Name:  text(func(r *Row) *string { return &r.Options[2].Name }),
	ColOption3Value: text(func(r *Row) *string { return &r.Options[2].Value }),

	ColPrice:         number(func(r *Row) *Value[float64] { return &r.Price }),
	ColPriceIntl:     number(func(r *Row) *Value[float64] { return &r.PriceIntl }),
	ColCompareAt:     number(func(r *Row) *Value[float64] { return &r.CompareAt }),
	ColCompareAtIntl: number(func(r *Row) *Value[float64] { return &r.CompareAtIntl }),
	ColCost:          number(func(r *Row) *Value[float64] { return &r.Cost }),

	ColChargeTax:        flag(func(r *Row) *Value[bool] { return &r.ChargeTax }),
	ColTaxCode:          text(func(r *Row) *string { return &r.TaxCode }),
	ColInventoryPolicy:  text(func(r *Row) *string { return &r.InventoryPolicy }),
	ColInventoryQty:     integer(func(r *Row) *Value[int] { return &r.InventoryQty }),
	ColContinueSelling:  flag(func(r *Row) *Value[bool] { return &r.ContinueSelling }),
	ColWeight:           integer(func(r *Row) *Value[int] { return &r.Weight }),
	ColWeightUnit:       text(func(r *Row) *string { return &r.WeightUnit }),
	ColRequiresShipping: flag(func(r *Row) *Value[bool] { return &r.RequiresShipping }),
	ColFulfillment:      text(func(r *Row) *string { return &r.Fulfillment }),

	ColProductImage:     text(func(r *Row) *string { return &r.ProductImage }),
	ColVariantImage:     text(func(r *Row) *string { return &r.VariantImage }),
	ColGiftCard:         flag(func(r *Row) *Value[bool] { return &r.GiftCard }),
	ColSEODescription:   text(func(r *Row) *string { return &r.SEODescription }),
	ColInventoryTracker: text(func(r *Row) *string { return &r.InventoryTracker }),
}
