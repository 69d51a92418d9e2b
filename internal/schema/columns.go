// Package schema defines the product-import column layout and the typed Row
// record every other package reads and writes.
package schema

// Target column names. Everything that touches a column goes through these
// constants so a misspelled header cannot silently create a new column.
const (
	ColTitle            = "Title"
	ColHandle           = "URL handle"
	ColDescription      = "Description"
	ColVendor           = "Vendor"
	ColCategory         = "Product category"
	ColType             = "Type"
	ColTags             = "Tags"
	ColPublished        = "Published on online store"
	ColStatus           = "Status"
	ColSKU              = "SKU"
	ColBarcode          = "Barcode"
	ColOption1Name      = "Option1 name"
	ColOption1Value     = "Option1 value"
	ColOption2Name      = "Option2 name"
	ColOption2Value     = "Option2 value"
	ColOption3Name      = "Option3 name"
	ColOption3Value     = "Option3 value"
	ColPrice            = "Price"
	ColPriceIntl        = "Price / International"
	ColCompareAt        = "Compare-at price"
	ColCompareAtIntl    = "Compare-at price / International"
	ColCost             = "Cost per item"
	ColChargeTax        = "Charge tax"
	ColTaxCode          = "Tax code"
	ColInventoryPolicy  = "Inventory policy"
	ColInventoryQty     = "Inventory quantity"
	ColContinueSelling  = "Continue selling when out of stock"
	ColWeight           = "Weight value (grams)"
	ColWeightUnit       = "Weight unit for display"
	ColRequiresShipping = "Requires shipping"
	ColFulfillment      = "Fulfillment service"
	ColProductImage     = "Product image URL"
	ColImagePosition    = "Image position"
	ColImageAlt         = "Image alt text"
	ColVariantImage     = "Variant image URL"
	ColGiftCard         = "Gift card"
	ColSEOTitle         = "SEO title"
	ColSEODescription   = "SEO description"
	ColInventoryTracker = "Variant Inventory Tracker"

	// ColShippingCategory is produced by the field-mapping tables but is not
	// part of the fixed layout; the writer appends it.
	ColShippingCategory = "Shipping Category"
)

// MaxGroupRows is the platform limit on variant rows per product record.
const MaxGroupRows = 90

// Columns is the fixed output layout, in order.
var Columns = []string{
	ColTitle, ColHandle, ColDescription, ColVendor, ColCategory, ColType, ColTags, ColPublished,
	ColStatus, ColSKU, ColBarcode, ColOption1Name, ColOption1Value, ColOption2Name, ColOption2Value,
	ColOption3Name, ColOption3Value, ColPrice, ColPriceIntl, ColCompareAt, ColCompareAtIntl,
	ColCost, ColChargeTax, ColTaxCode, ColInventoryPolicy, ColInventoryQty, ColContinueSelling,
	ColWeight, ColWeightUnit, ColRequiresShipping, ColFulfillment, ColProductImage,
	ColImagePosition, ColImageAlt, ColVariantImage, ColGiftCard, ColSEOTitle, ColSEODescription,
	"Google Shopping / Google product category", "Google Shopping / Gender", "Google Shopping / Age group",
	"Google Shopping / MPN", "Google Shopping / AdWords Grouping", "Google Shopping / AdWords labels",
	"Google Shopping / Condition", "Google Shopping / Custom product", "Google Shopping / Custom label 0",
	"Google Shopping / Custom label 1", "Google Shopping / Custom label 2", "Google Shopping / Custom label 3",
	"Google Shopping / Custom label 4", ColInventoryTracker,
}

// VariantFields are the columns a variant row carries over onto the product
// row it is promoted into.
var VariantFields = []string{
	ColCompareAt, ColInventoryQty, ColWeight, ColPrice,
	ColFulfillment, ColRequiresShipping, ColChargeTax, ColWeightUnit,
	ColOption1Value, ColOption1Name, ColOption2Name, ColOption2Value, ColOption3Name, ColOption3Value,
}

// OptionColumns lists the three (name, value) column pairs in slot order.
var OptionColumns = [3][2]string{
	{ColOption1Name, ColOption1Value},
	{ColOption2Name, ColOption2Value},
	{ColOption3Name, ColOption3Value},
}

// DescriptiveFields are blanked on variant continuation rows.
var DescriptiveFields = []string{ColTitle, ColDescription, ColVendor, ColCategory, ColType, ColTags}

// Default is a column that must always carry a value.
type Default struct {
	Column string
	Value  string
}

// RequiredDefaults returns the fill-in values applied to every normalized
// row, in header order.
func RequiredDefaults(vendor string) []Default {
	return []Default{
		{ColHandle, ""},
		{ColVendor, vendor},
		{ColPublished, "TRUE"},
		{ColCategory, ""},
		{ColTags, ""},
		{ColOption1Name, ""},
		{ColOption1Value, ""},
		{ColOption2Name, ""},
		{ColOption2Value, ""},
		{ColOption3Name, ""},
		{ColOption3Value, ""},
		{ColFulfillment, "manual"},
		{ColRequiresShipping, "TRUE"},
		{ColInventoryPolicy, ""},
		{ColChargeTax, "TRUE"},
		{ColGiftCard, "FALSE"},
		{ColWeightUnit, "kg"},
		{ColContinueSelling, "TRUE"},
		{ColInventoryTracker, "shopify"},
	}
}
