package normalizer

import (
	"math"
	"net/url"
	"strings"

	"github.com/nconklindev/shopmigrate/internal/schema"
)

// imageSeparator splits and joins multi-image cells.
const imageSeparator = ", "

// CleanValue trims v and turns an empty JSON list into an empty string.
func CleanValue(v string) string {
	v = strings.TrimSpace(v)
	if v == "[]" {
		return ""
	}
	return v
}

// KgToGrams converts a kilogram value to whole grams, rounding to nearest.
// Empty or unparseable input yields 0.
func KgToGrams(v string) int {
	return int(math.Round(schema.ParseFloat(v) * 1000))
}

// SanitizeText prepares a long text field for a single CSV cell: line breaks
// (real or a literal backslash-n) become <br> and whitespace runs collapse to
// one space. Markup is left alone.
func SanitizeText(v string) string {
	if strings.TrimSpace(v) == "" {
		return ""
	}
	v = strings.NewReplacer("\r\n", "<br>", "\n", "<br>", `\n`, "<br>").Replace(v)
	return strings.Join(strings.Fields(v), " ")
}

// SplitCategories turns "Shoes > Riding > Kids" into the first segment and a
// comma-joined tag list of every segment.
func SplitCategories(v string) (category, tags string) {
	if strings.TrimSpace(v) == "" {
		return "", ""
	}
	parts := strings.Split(v, ">")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts[0], strings.Join(parts, ", ")
}

// SplitImages splits a multi-image cell into its URLs.
func SplitImages(v string) []string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return strings.Split(v, imageSeparator)
}

// FirstImage returns the first URL of a multi-image cell.
func FirstImage(v string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(v), imageSeparator)
	return first
}

// EncodeImageURL percent-encodes the path segments and query of an absolute
// URL, keeping scheme and host readable. Anything without a scheme and host
// is encoded as a whole.
func EncodeImageURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return rawURLEncode(raw)
	}

	segments := strings.Split(strings.TrimPrefix(u.Path, "/"), "/")
	for i, s := range segments {
		segments[i] = rawURLEncode(s)
	}

	var b strings.Builder
	b.WriteString(u.Scheme)
	b.WriteString("://")
	b.WriteString(u.Host)
	b.WriteByte('/')
	b.WriteString(strings.Join(segments, "/"))
	if u.RawQuery != "" {
		b.WriteByte('?')
		b.WriteString(rawURLEncode(u.RawQuery))
	}
	return b.String()
}

// EncodeImages encodes every URL of a multi-image cell.
func EncodeImages(v string) string {
	images := SplitImages(v)
	for i, img := range images {
		images[i] = EncodeImageURL(img)
	}
	return strings.Join(images, imageSeparator)
}

// rawURLEncode escapes everything outside the RFC 3986 unreserved set,
// spaces included as %20.
func rawURLEncode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
