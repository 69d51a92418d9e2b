// Package mapping holds the source-to-target column tables for the supported
// export languages and picks one by looking at an input header.
package mapping

import (
	"errors"
	"strings"

	"github.com/nconklindev/shopmigrate/internal/schema"
)

// ErrNoMapping is returned when no table matches the input header.
var ErrNoMapping = errors.New("could not identify a field mapping from the column headers")

// Language identifies a mapping table.
type Language string

// Supported export languages.
const (
	Swedish Language = "sv"
	English Language = "en"
)

// Field maps one source column to a target column.
type Field struct {
	Source string
	Target string
}

// Table is an ordered source-to-target column mapping.
type Table struct {
	Language Language
	Fields   []Field
}

// Columns read directly from the raw row, independent of the table in use.
// The first name present in the row wins.
var (
	TypeColumns       = []string{"Typ", "Type"}
	CategoryColumns   = []string{"Kategorier", "Categories"}
	StockColumns      = []string{"Lager", "Stock"}
	BackorderColumns  = []string{"Tillåt restnoteringar?", "Backorders allowed?"}
	VisibilityColumns = []string{"Visibility in catalog", "Synlighet i katalog"}
)

// SwedishTable maps a Swedish WooCommerce export.
var SwedishTable = &Table{
	Language: Swedish,
	Fields: []Field{
		{"Namn", schema.ColTitle},
		{"Beskrivning", schema.ColDescription},
		{"Artikelnummer", schema.ColSKU},
		{"Vikt (kg)", schema.ColWeight},
		{"Lager", schema.ColInventoryQty},
		{"Ordinarie pris", schema.ColPrice},
		{"Reapris", schema.ColCompareAt},
		{"Bilder", schema.ColProductImage},
		{"Synlighet i katalog", schema.ColStatus},
		{"Kort beskrivning", schema.ColSEODescription},
		{"Momsstatus", schema.ColChargeTax},
		{"Momsklass", schema.ColTaxCode},
		{"Fraktklass", schema.ColShippingCategory},
		{"GTIN, UPC, EAN eller ISBN", schema.ColBarcode},
		{"Attribut 1 namn", schema.ColOption1Name},
		{"Attribut 1 värde(n)", schema.ColOption1Value},
		{"Attribut 2 namn", schema.ColOption2Name},
		{"Attribut 2 värde(n)", schema.ColOption2Value},
		{"Attribut 3 namn", schema.ColOption3Name},
		{"Attribut 3 värde(n)", schema.ColOption3Value},
		{"Publicerad", schema.ColPublished},
	},
}

// EnglishTable maps an English WooCommerce export.
var EnglishTable = &Table{
	Language: English,
	Fields: []Field{
		{"Name", schema.ColTitle},
		{"Description", schema.ColDescription},
		{"SKU", schema.ColSKU},
		{"Weight (kg)", schema.ColWeight},
		{"Stock", schema.ColInventoryQty},
		{"Regular price", schema.ColPrice},
		{"Sale price", schema.ColCompareAt},
		{"Images", schema.ColProductImage},
		{"Visibility in catalog", schema.ColStatus},
		{"Short description", schema.ColSEODescription},
		{"Tax status", schema.ColChargeTax},
		{"Tax class", schema.ColTaxCode},
		{"Shipping class", schema.ColShippingCategory},
		{"GTIN, UPC, EAN, or ISBN", schema.ColBarcode},
		{"Attribute 1 name", schema.ColOption1Name},
		{"Attribute 1 value(s)", schema.ColOption1Value},
		{"Attribute 2 name", schema.ColOption2Name},
		{"Attribute 2 value(s)", schema.ColOption2Value},
		{"Attribute 3 name", schema.ColOption3Name},
		{"Attribute 3 value(s)", schema.ColOption3Value},
		{"Published", schema.ColPublished},
	},
}

// Tables in detection order.
var Tables = []*Table{SwedishTable, EnglishTable}

// Detect returns the first table with at least one source column in header.
func Detect(header []string) (*Table, error) {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[CleanHeader(h)] = true
	}

	for _, t := range Tables {
		for _, f := range t.Fields {
			if present[f.Source] {
				return t, nil
			}
		}
	}

	return nil, ErrNoMapping
}

// Target returns the target column for a source column.
func (t *Table) Target(source string) (string, bool) {
	for _, f := range t.Fields {
		if f.Source == source {
			return f.Target, true
		}
	}
	return "", false
}

// Targets returns the distinct target columns in table order.
func (t *Table) Targets() []string {
	seen := make(map[string]bool, len(t.Fields))
	targets := make([]string, 0, len(t.Fields))
	for _, f := range t.Fields {
		if !seen[f.Target] {
			seen[f.Target] = true
			targets = append(targets, f.Target)
		}
	}
	return targets
}

// Select returns the fields whose source column is present in header, in
// header order.
func (t *Table) Select(header []string) []Field {
	var selected []Field
	for _, h := range header {
		if target, ok := t.Target(CleanHeader(h)); ok {
			selected = append(selected, Field{Source: CleanHeader(h), Target: target})
		}
	}
	return selected
}

// CleanHeader strips a UTF-8 byte order mark and surrounding whitespace.
func CleanHeader(h string) string {
	return strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF"))
}

// Lookup returns the value of the first column in names present in raw.
func Lookup(raw map[string]string, names []string) (string, bool) {
	for _, name := range names {
		if v, ok := raw[name]; ok {
			return v, true
		}
	}
	return "", false
}
