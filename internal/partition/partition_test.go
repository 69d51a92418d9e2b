package partition

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/nconklindev/shopmigrate/internal/catalog"
	"github.com/nconklindev/shopmigrate/internal/handle"
	"github.com/nconklindev/shopmigrate/internal/normalizer"
	"github.com/nconklindev/shopmigrate/internal/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func footSizeVariant(title, sku, size string) schema.Row {
	r := schema.Row{Title: title, SKU: sku, Description: "variant text", Vendor: "v", Tags: "t"}
	r.Options[0] = schema.Option{Name: "Foot Size", Value: size}
	r.Price = schema.Some(100.0)
	return r
}

func colorVariant(sku, color string) schema.Row {
	r := schema.Row{Title: "Pad - " + color, SKU: sku}
	r.Options[0] = schema.Option{Name: "Color", Value: color}
	return r
}

func product(h, title string, images []string, variants ...schema.Row) *catalog.Product {
	return &catalog.Product{
		Handle:   h,
		Main:     &schema.Row{Title: title, Handle: "", Description: "main text"},
		Variants: variants,
		Images:   images,
	}
}

func handles(groups []Group) []string {
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.Handle
	}
	return out
}

func TestFootSizeBucket(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"0", "34-", true},
		{"30", "34-", true},
		{"35", "34-", true},
		{"36", "35-38", true},
		{"38", "35-38", true},
		{"38.5", "35-38", true},
		{"39", "39-42", true},
		{"42", "39-42", true},
		{"43", "43-46", true},
		{" 46 ", "43-46", true},
		{"47", "", false},
		{"-1", "", false},
		{"XL", "", false},
		{"", "", false},
		{"NaN", "", false},
		{"0x1p5", "", false},
		{"0X24", "", false},
		{"-0x1p5", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := FootSizeBucket(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPartition_FootSizeEndToEnd(t *testing.T) {
	agg := catalog.NewAggregator("product")
	main := schema.Row{Title: "Blue Shoe - X", ProductImage: "https://a.se/1.jpg, https://a.se/2.jpg"}
	require.NoError(t, agg.Add(catalog.Input{Line: 1, Kind: normalizer.Main, Row: main}))
	for size := 30; size <= 124; size++ {
		v := footSizeVariant("Blue Shoe - "+strconv.Itoa(size), fmt.Sprintf("BS-%d", size), strconv.Itoa(size))
		require.NoError(t, agg.Add(catalog.Input{Line: size, Kind: normalizer.Variant, Row: v}))
	}
	products, orphans := agg.Finish()
	require.Empty(t, orphans)
	require.Len(t, products, 1)
	require.Len(t, products[0].Variants, 95)

	groups, err := New(handle.NewAllocator(), Options{}).Partition(products[0])
	require.NoError(t, err)

	assert.Equal(t, []string{
		"blue-shoe-34-", "blue-shoe-35-38", "blue-shoe-39-42", "blue-shoe-43-46", "blue-shoe",
	}, handles(groups))

	wantRows := []int{5, 3, 4, 4, 78}
	total := 0
	for i, g := range groups {
		assert.Equal(t, wantRows[i], g.Rows(), g.Handle)
		assert.LessOrEqual(t, g.Rows(), schema.MaxGroupRows)
		assert.Equal(t, "Blue Shoe - X", g.Head.Title)
		assert.Equal(t, g.Handle, g.Head.Handle)
		assert.Equal(t, "https://a.se/1.jpg", g.Head.ProductImage)
		assert.Equal(t, "https://a.se/1.jpg", g.Head.VariantImage)
		assert.Equal(t, []string{"https://a.se/2.jpg"}, g.Images)
		for _, b := range g.Body {
			assert.Equal(t, g.Handle, b.Handle)
			assert.Empty(t, b.Title)
			assert.Empty(t, b.Description)
			assert.Empty(t, b.Vendor)
			assert.Empty(t, b.Tags)
			assert.Equal(t, "https://a.se/1.jpg", b.VariantImage)
		}
		total += g.Rows()
	}
	assert.Equal(t, 94, total, "the first variant is folded into the template")

	assert.Equal(t, "31", groups[0].Head.Options[0].Value)
	assert.Equal(t, "47", groups[4].Head.Options[0].Value)
	assert.Equal(t, "48", groups[4].Body[0].Options[0].Value)
}

func TestPartition_PagesLargeBucket(t *testing.T) {
	variants := make([]schema.Row, 0, 200)
	for i := range 200 {
		v := footSizeVariant("Boot - 40", fmt.Sprintf("B-%03d", i), "40")
		v.InventoryQty = schema.Some(i)
		variants = append(variants, v)
	}

	groups, err := New(handle.NewAllocator(), Options{}).Partition(product("boot", "Boot", nil, variants...))
	require.NoError(t, err)

	assert.Equal(t, []string{"boot-39-42", "boot-39-42-2", "boot-39-42-3"}, handles(groups))
	assert.Equal(t, []int{90, 90, 19}, []int{groups[0].Rows(), groups[1].Rows(), groups[2].Rows()})
	for _, g := range groups {
		assert.Equal(t, "Boot", g.Head.Title, "foot-size pages keep the template title")
	}
	assert.Equal(t, schema.Some(1), groups[0].Head.InventoryQty)
	assert.Equal(t, schema.Some(91), groups[1].Head.InventoryQty)
	assert.Equal(t, "B-092", groups[1].Body[0].SKU)
}

func TestPartition_PagesFallbackBucket(t *testing.T) {
	variants := make([]schema.Row, 0, 182)
	for i := range 182 {
		variants = append(variants, colorVariant(fmt.Sprintf("P-%d", i), fmt.Sprintf("c%d", i)))
	}

	groups, err := New(handle.NewAllocator(), Options{}).Partition(product("pad", "Pad", nil, variants...))
	require.NoError(t, err)

	assert.Equal(t, []string{"pad", "pad-2", "pad-3"}, handles(groups))
	assert.Equal(t, "Pad", groups[0].Head.Title)
	assert.Equal(t, "Pad - 2", groups[1].Head.Title)
	assert.Equal(t, "Pad - 3", groups[2].Head.Title)
	assert.Equal(t, 1, groups[2].Rows())
	assert.Empty(t, groups[2].Body)
}

func TestPartition_MaxVariantsOption(t *testing.T) {
	variants := make([]schema.Row, 0, 11)
	for i := range 11 {
		variants = append(variants, colorVariant(fmt.Sprintf("P-%d", i), fmt.Sprintf("c%d", i)))
	}

	groups, err := New(handle.NewAllocator(), Options{MaxVariants: 4}).Partition(product("pad", "Pad", nil, variants...))
	require.NoError(t, err)

	assert.Equal(t, []int{4, 4, 2}, []int{groups[0].Rows(), groups[1].Rows(), groups[2].Rows()})
}

func TestPartition_ZeroVariants(t *testing.T) {
	p := product("saddle", "Saddle", []string{"https://a.se/s1.jpg", "https://a.se/s2.jpg", "https://a.se/s3.jpg"})

	groups, err := New(handle.NewAllocator(), Options{}).Partition(p)
	require.NoError(t, err)

	require.Len(t, groups, 1)
	g := groups[0]
	assert.Equal(t, "saddle", g.Handle)
	assert.Equal(t, 1, g.Rows())
	assert.Empty(t, g.Body)
	assert.Equal(t, "Saddle", g.Head.Title)
	assert.Equal(t, "https://a.se/s1.jpg", g.Head.ProductImage)
	assert.Equal(t, []string{"https://a.se/s2.jpg", "https://a.se/s3.jpg"}, g.Images)
}

func TestPartition_SingleVariantIsFoldedIntoMain(t *testing.T) {
	v := footSizeVariant("Boot - 40", "B-40", "40")
	v.Price = schema.Some(1299.0)
	v.ProductImage = "https://a.se/b40.jpg"

	groups, err := New(handle.NewAllocator(), Options{}).Partition(product("boot", "Boot", nil, v))
	require.NoError(t, err)

	require.Len(t, groups, 1)
	head := groups[0].Head
	assert.Equal(t, "boot", head.Handle)
	assert.Equal(t, "Boot", head.Title)
	assert.Equal(t, schema.Some(1299.0), head.Price)
	assert.Equal(t, schema.Option{Name: "Foot Size", Value: "40"}, head.Options[0])
	assert.Equal(t, "https://a.se/b40.jpg", head.VariantImage)
	assert.Empty(t, head.SKU, "SKU is not a variant-carried field")
}

func TestPartition_DoesNotMutateProduct(t *testing.T) {
	p := product("pad", "Pad", []string{"https://a.se/p.jpg"}, colorVariant("P-1", "red"), colorVariant("P-2", "blue"), colorVariant("P-3", "green"))

	_, err := New(handle.NewAllocator(), Options{}).Partition(p)
	require.NoError(t, err)

	assert.Len(t, p.Variants, 3)
	assert.Equal(t, "Pad - blue", p.Variants[1].Title)
	assert.Empty(t, p.Main.Handle)
	assert.Empty(t, p.Main.VariantImage)
}

func TestPartition_BodyKeepsOwnVariantImage(t *testing.T) {
	v2 := colorVariant("P-2", "blue")
	v2.ProductImage = "https://a.se/blue.jpg, https://a.se/blue2.jpg"
	p := product("pad", "Pad", []string{"https://a.se/p.jpg"}, colorVariant("P-1", "red"), colorVariant("P-1b", "green"), v2)

	groups, err := New(handle.NewAllocator(), Options{}).Partition(p)
	require.NoError(t, err)

	require.Len(t, groups, 1)
	require.Len(t, groups[0].Body, 1)
	assert.Equal(t, "https://a.se/blue.jpg", groups[0].Body[0].VariantImage)
	assert.Nil(t, groups[0].Images)
}

func TestPartition_HandlesUniqueAcrossProducts(t *testing.T) {
	alloc := handle.NewAllocator()
	pt := New(alloc, Options{})

	variants := make([]schema.Row, 0, 182)
	for i := range 182 {
		variants = append(variants, colorVariant(fmt.Sprintf("S-%d", i), fmt.Sprintf("c%d", i)))
	}

	var all []Group
	for _, p := range []*catalog.Product{
		product("shoe", "Shoe", nil, variants...),
		product("shoe-2", "Shoe 2", nil),
		product("shoe", "Shoe again", nil),
	} {
		groups, err := pt.Partition(p)
		require.NoError(t, err)
		all = append(all, groups...)
	}

	assert.Equal(t, []string{"shoe", "shoe-2", "shoe-3", "shoe-2-1", "shoe-1"}, handles(all))
	seen := make(map[string]bool)
	for _, h := range handles(all) {
		assert.False(t, seen[h], "duplicate handle %s", h)
		seen[h] = true
	}
}

func TestPartition_NoMain(t *testing.T) {
	_, err := New(handle.NewAllocator(), Options{}).Partition(&catalog.Product{Handle: "ghost"})
	require.ErrorIs(t, err, ErrNoMain)
}
