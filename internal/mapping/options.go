package mapping

import "maps"

// defaultTranslations turns Swedish attribute names and values into the
// English vocabulary the storefront uses.
var defaultTranslations = map[string]string{
	"Storlek":            "Size",
	"Färg":               "Color",
	"Antal":              "Quantity",
	"Vikt":               "Weight",
	"Material":           "Material",
	"Märke":              "Brand",
	"Typ":                "Type",
	"Modell":             "Model",
	"Längd":              "Length",
	"Bredd":              "Width",
	"Höjd":               "Height",
	"Diameter":           "Diameter",
	"Volym":              "Volume",
	"Storleksguide":      "Size guide",
	"Färgkod":            "Color code",
	"Färgnamn":           "Color name",
	"Färggrupp":          "Color group",
	"Färgtyp":            "Color type",
	"Smak":               "Flavor",
	"Stil":               "Style",
	"Fotstorlek":         "Foot Size",
	"Summa":              "Total",
	"Swarovski":          "Crystal Type",
	"Swarovski GG08":     "Crystal Type GG08",
	"Swarovski SS10":     "Crystal Type SS10",
	"Swarovski SS16":     "Crystal Type SS16",
	"Båge":               "Frame",
	"E-Logga":            "E-Logo",
	"Midja":              "Waist",
	"Rondin G9":          "Rondin G9",
	"Spänne":             "Buckle",
	"Top":                "Top",
	"Vad":                "Calf",
	"Ben":                "Leg",
	"Extra Storlek":      "Extra Size",
	"Infinito läder Top": "Infinito Leather Top",
	"Sida":               "Side",
	"Skaft":              "Shaft",
	"Skal":               "Shell",
}

// Translator rewrites option names and values by exact match.
type Translator map[string]string

// NewTranslator returns the built-in translations overlaid with extra.
func NewTranslator(extra map[string]string) Translator {
	t := maps.Clone(defaultTranslations)
	maps.Copy(t, extra)
	return Translator(t)
}

// Translate returns the translation of s, or s itself.
func (t Translator) Translate(s string) string {
	if v, ok := t[s]; ok {
		return v
	}
	return s
}
