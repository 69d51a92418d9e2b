package partition

import (
	"math"
	"strconv"
	"strings"
)

// footSizeRange is an inclusive range of whole sizes.
type footSizeRange struct {
	name   string
	lo, hi int
}

// footSizeRanges are checked in order; the first hit wins, so 35 lands in
// "34-".
var footSizeRanges = []footSizeRange{
	{"34-", 0, 35},
	{"35-38", 35, 38},
	{"39-42", 39, 42},
	{"43-46", 43, 46},
}

// FootSizeBucket returns the bucket name for a foot-size option value.
// Decimal sizes are truncated. Non-numeric, hexadecimal, negative and
// oversized values report false.
func FootSizeBucket(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if strings.ContainsAny(value, "xX") {
		return "", false
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return "", false
	}
	size := int(f)
	for _, r := range footSizeRanges {
		if size >= r.lo && size <= r.hi {
			return r.name, true
		}
	}
	return "", false
}
