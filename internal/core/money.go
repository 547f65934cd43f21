// Package core provides money parsing and handling utilities.
//
// Bank exports write amounts with a decimal comma ("-12,50"). Parsing is a
// plain comma-to-dot substitution followed by a decimal parse; thousands
// separators are not understood, so "1.234,56" is rejected. Exponent notation
// ("1e3") never appears in an export and is rejected as well.
package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts an export amount to a signed decimal.
//
// Examples:
//
//	ParseAmount("-12,50")  -> -12.50, nil
//	ParseAmount("1800.00") -> 1800, nil
//	ParseAmount("abc")     -> 0, ErrInvalidAmount
func ParseAmount(s string) (decimal.Decimal, error) {
	normalized := strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if normalized == "" {
		return decimal.Zero, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	if strings.ContainsAny(normalized, "eE") {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d, nil
}

// FormatEuros renders an amount with two decimals and a trailing euro sign,
// e.g. "1296.50€".
func FormatEuros(d decimal.Decimal) string {
	return d.StringFixed(2) + "€"
}
