package table

import (
	"math"
	"strconv"
	"strings"
)

// ParseNumber converts free text to a number the way a form field would.
// Surrounding whitespace is ignored and empty text is 0. Decimal and
// exponent forms are accepted, as are 0x, 0o and 0b integer literals.
// Anything else, including NaN and infinities, is 0.
func ParseNumber(text string) float64 {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0
	}
	if v, ok := parsePrefixedInt(s); ok {
		return v
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ParsePrice coerces text to a price. Negative results are 0.
func ParsePrice(text string) float64 {
	v := ParseNumber(text)
	if v < 0 {
		return 0
	}
	return v
}

// ParseQuantity coerces text to a quantity. Negative, non-integral or
// out-of-range results are 0.
func ParseQuantity(text string) int {
	v := ParseNumber(text)
	if v < 0 || v != math.Trunc(v) || v > math.MaxInt32 {
		return 0
	}
	return int(v)
}

// parsePrefixedInt handles the 0x/0o/0b forms, which ParseFloat rejects or
// reads differently. A leading zero without a base letter is decimal.
func parsePrefixedInt(s string) (float64, bool) {
	if len(s) < 3 || s[0] != '0' {
		return 0, false
	}
	var base int
	switch s[1] {
	case 'x', 'X':
		base = 16
	case 'o', 'O':
		base = 8
	case 'b', 'B':
		base = 2
	default:
		return 0, false
	}
	digits := s[2:]
	if strings.ContainsRune(digits, '_') {
		return 0, true
	}
	v, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return 0, true
	}
	return float64(v), true
}
