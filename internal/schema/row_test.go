package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRow_SetCoercesByColumn(t *testing.T) {
	var r Row
	r.Set(ColPrice, "199,50")
	r.Set(ColInventoryQty, "abc")
	r.Set(ColChargeTax, "Yes")
	r.Set(ColGiftCard, "0")
	r.Set(ColTitle, "Blue Shoe")
	r.Set(ColShippingCategory, "bulky")

	assert.Equal(t, Some(199.5), r.Price)
	assert.Equal(t, Some(0), r.InventoryQty)
	assert.Equal(t, Some(true), r.ChargeTax)
	assert.Equal(t, Some(false), r.GiftCard)
	assert.Equal(t, "Blue Shoe", r.Title)
	assert.Equal(t, "bulky", r.Extra[ColShippingCategory])
}

func TestRow_GetSerializesTypedValues(t *testing.T) {
	r := Row{
		Price:            Some(199.0),
		CompareAt:        Some(149.95),
		RequiresShipping: Some(true),
		ContinueSelling:  Some(false),
		Weight:           Some(1500),
	}

	assert.Equal(t, "199", r.Get(ColPrice))
	assert.Equal(t, "149.95", r.Get(ColCompareAt))
	assert.Equal(t, "TRUE", r.Get(ColRequiresShipping))
	assert.Equal(t, "FALSE", r.Get(ColContinueSelling))
	assert.Equal(t, "1500", r.Get(ColWeight))
	assert.Equal(t, "", r.Get(ColCost), "absent value is an empty cell")
	assert.Equal(t, "", r.Get("Google Shopping / Gender"))
}

func TestRow_CopyFromSkipsAbsentValues(t *testing.T) {
	dst := Row{Price: Some(100.0), CompareAt: Some(90.0), Fulfillment: "manual"}
	src := Row{Price: Some(120.0), Fulfillment: "external"}
	src.Options[0] = Option{Name: "Foot Size", Value: "38"}

	dst.CopyFrom(&src, VariantFields)

	assert.Equal(t, Some(120.0), dst.Price)
	assert.Equal(t, Some(90.0), dst.CompareAt, "absent compare-at price must not overwrite")
	assert.Equal(t, "external", dst.Fulfillment)
	assert.Equal(t, Option{Name: "Foot Size", Value: "38"}, dst.Options[0])
}

func TestRow_CloneDoesNotShareExtra(t *testing.T) {
	r := Row{Title: "A"}
	r.Set(ColShippingCategory, "small")

	c := r.Clone()
	c.Set(ColShippingCategory, "large")
	c.Title = "B"

	assert.Equal(t, "small", r.Extra[ColShippingCategory])
	assert.Equal(t, "A", r.Title)
}

func TestRow_Record(t *testing.T) {
	r := Row{Title: "Shoe", Handle: "shoe", GiftCard: Some(false)}
	rec := r.Record([]string{ColHandle, ColTitle, ColGiftCard, ColPrice})

	require.Len(t, rec, 4)
	assert.Equal(t, []string{"shoe", "Shoe", "FALSE", ""}, rec)
}

func TestRow_Clear(t *testing.T) {
	r := Row{Title: "Shoe", Price: Some(10.0)}
	r.Set(ColShippingCategory, "x")

	r.Clear(ColTitle)
	r.Clear(ColPrice)
	r.Clear(ColShippingCategory)

	assert.Empty(t, r.Title)
	assert.False(t, r.Has(ColPrice))
	assert.False(t, r.Has(ColShippingCategory))
}

func TestParseHelpers(t *testing.T) {
	tests := []struct {
		name string
		in   string
		f    float64
		i    int
		b    bool
	}{
		{"Empty", "", 0, 0, false},
		{"Integer", "12", 12, 12, false},
		{"Comma decimal", "1,5", 1.5, 1, false},
		{"Dot decimal", "2.75", 2.75, 2, false},
		{"Text", "Notify", 0, 0, false},
		{"One", "1", 1, 1, true},
		{"Yes", " YES ", 0, 0, true},
		{"Negative", "-3", -3, -3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.f, ParseFloat(tt.in))
			assert.Equal(t, tt.i, ParseInt(tt.in))
			assert.Equal(t, tt.b, ParseBool(tt.in))
		})
	}
}
