package ouch

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var maxPrice = decimal.NewFromInt(MaxUint32Value)

// FormatPrice renders a price in hundredths with exactly two fractional digits.
func FormatPrice(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

// ParsePrice converts a decimal string such as "150.00" or "0.5" to hundredths.
// Values needing more than two fractional digits, or outside the uint32 wire
// range, fail with ErrValueOutOfRange.
func ParsePrice(s string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("ouch: parse price %q: %w", s, err)
	}
	cents := d.Shift(2)
	if !cents.IsInteger() || cents.IsNegative() || cents.GreaterThan(maxPrice) {
		return 0, &EncodeError{Field: FieldPrice, Err: ErrValueOutOfRange, Detail: s}
	}
	return cents.IntPart(), nil
}
