package schema

import (
	"math"
	"strconv"
	"strings"
)

// ParseBool accepts "true", "1" and "yes" in any case. Everything else is false.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

// ParseFloat reads a decimal that may use a comma as separator.
// Unparseable input yields 0.
func ParseFloat(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// ParseInt reads an integer. Decimal input is truncated toward zero and
// unparseable input yields 0.
func ParseInt(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return int(ParseFloat(s))
}

// FormatBool renders a flag the way the import format expects.
func FormatBool(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

// FormatFloat renders f without trailing zeros.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatInt renders i in base 10.
func FormatInt(i int) string {
	return strconv.Itoa(i)
}
