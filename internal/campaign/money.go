package campaign

import (
	"math"
	"strconv"
	"strings"
)

// FormatCurrency renders an amount the way the site shows ARS: dollar sign,
// dot-grouped thousands, no decimals.
func FormatCurrency(amount float64) string {
	negative := amount < 0
	whole := int64(math.Round(math.Abs(amount)))

	digits := strconv.FormatInt(whole, 10)
	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	return b.String()
}

// ParseAmount recovers the numeric value from a formatted display string. The
// form keeps both representations in sync on every keystroke.
func ParseAmount(display string) float64 {
	var digits strings.Builder
	for _, r := range display {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	value, err := strconv.ParseFloat(digits.String(), 64)
	if err != nil {
		return 0
	}
	return value
}
