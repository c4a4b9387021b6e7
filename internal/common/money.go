package common

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// RoundDollars rounds a dollar amount to the nearest cent.
func RoundDollars(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FormatDollars renders a dollar amount as "$1,234.56" (or "-$45.00").
func FormatDollars(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	s := d.StringFixed(2)
	whole, cents, _ := strings.Cut(s, ".")

	// Insert thousands separators into the whole part.
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	return fmt.Sprintf("%s$%s.%s", sign, b.String(), cents)
}

// ParseDollars parses user-entered dollar amounts like "$1,234.56" or "45".
func ParseDollars(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: invalid dollar amount %q", ErrInvalidArgument, s)
	}
	return RoundDollars(d), nil
}

// Plural naively pluralizes a unit label when n != 1.
// An irregular plural may be supplied as the third argument.
func Plural(word string, n int, irregular ...string) string {
	if n == 1 {
		return word
	}
	if len(irregular) > 0 {
		return irregular[0]
	}
	return word + "s"
}
