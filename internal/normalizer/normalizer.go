// Package normalizer turns raw export rows into typed schema rows and labels
// them as main products or variants.
package normalizer

import (
	"slices"
	"strings"

	"github.com/nconklindev/shopmigrate/internal/mapping"
	"github.com/nconklindev/shopmigrate/internal/schema"
)

// Options configures a Normalizer.
type Options struct {
	Vendor     string
	Translator mapping.Translator
}

// Normalizer maps raw rows through one field table.
type Normalizer struct {
	fields   []mapping.Field
	defaults []schema.Default
	tr       mapping.Translator
}

// New creates a Normalizer for rows read under header.
func New(table *mapping.Table, header []string, opts Options) *Normalizer {
	tr := opts.Translator
	if tr == nil {
		tr = mapping.NewTranslator(nil)
	}
	return &Normalizer{
		fields:   table.Select(header),
		defaults: schema.RequiredDefaults(opts.Vendor),
		tr:       tr,
	}
}

// Fields returns the mapped source/target pairs in header order.
func (n *Normalizer) Fields() []mapping.Field {
	return n.fields
}

// Normalize maps one raw row. It never fails: bad values fall back to zero
// values and missing columns are empty.
func (n *Normalizer) Normalize(raw map[string]string) schema.Row {
	cells := make(map[string]string, len(n.fields)+len(n.defaults))

	for _, f := range n.fields {
		v := strings.TrimSpace(raw[f.Source])
		switch f.Target {
		case schema.ColWeight:
			v = schema.FormatInt(KgToGrams(v))
		case schema.ColDescription, schema.ColSEODescription:
			v = SanitizeText(v)
		}
		v = CleanValue(v)
		if isOptionColumn(f.Target) {
			v = n.tr.Translate(v)
		}
		cells[f.Target] = v
	}

	category, _ := mapping.Lookup(raw, mapping.CategoryColumns)
	cells[schema.ColCategory], cells[schema.ColTags] = SplitCategories(category)

	switch cells[schema.ColPublished] {
	case "1":
		cells[schema.ColPublished] = "TRUE"
	case "-1":
		cells[schema.ColPublished] = "FALSE"
	}

	if strings.EqualFold(cells[schema.ColChargeTax], "taxable") {
		cells[schema.ColChargeTax] = "TRUE"
	}

	for _, d := range n.defaults {
		if strings.TrimSpace(cells[d.Column]) == "" {
			cells[d.Column] = d.Value
		}
	}

	stock, _ := mapping.Lookup(raw, mapping.StockColumns)
	qty := schema.ParseInt(stock)
	cells[schema.ColInventoryQty] = schema.FormatInt(qty)

	backorders, _ := mapping.Lookup(raw, mapping.BackorderColumns)
	continueSelling := strings.EqualFold(strings.TrimSpace(backorders), "notify") || qty < 0
	cells[schema.ColContinueSelling] = schema.FormatBool(continueSelling)
	if continueSelling {
		cells[schema.ColInventoryPolicy] = "continue"
	} else {
		cells[schema.ColInventoryPolicy] = "deny"
	}

	if img := cells[schema.ColProductImage]; img != "" {
		cells[schema.ColProductImage] = EncodeImages(img)
	}

	visibility, _ := mapping.Lookup(raw, mapping.VisibilityColumns)
	if strings.EqualFold(strings.TrimSpace(visibility), "visible") {
		cells[schema.ColStatus] = "active"
	} else {
		cells[schema.ColStatus] = "draft"
	}

	var row schema.Row
	for col, v := range cells {
		row.Set(col, v)
	}
	return row
}

func isOptionColumn(col string) bool {
	return slices.ContainsFunc(schema.OptionColumns[:], func(pair [2]string) bool {
		return pair[0] == col || pair[1] == col
	})
}
