// Package money centralizes parsing and JSON handling of monetary amounts
// that arrive from untrusted or loosely-typed storage (goal blobs, client
// payloads). The parse contract is best-effort: anything unusable becomes
// zero, never an error, because the budgeting computations must always
// produce a result.
package money

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// currencyMarks are characters stripped before numeric parsing. Covers the
// symbols clients are known to prepend plus grouping separators.
const currencyMarks = "₹$€£¥,_ "

// Parse converts a raw amount string into a decimal. Currency symbols,
// grouping separators and surrounding whitespace are stripped first.
// Unparseable input yields zero.
func Parse(raw string) decimal.Decimal {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(currencyMarks, r) {
			return -1
		}
		return r
	}, strings.TrimSpace(raw))

	if cleaned == "" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Amount is a decimal that decodes defensively from JSON. Goal blobs written
// by older clients store amounts as strings ("1,20,000", "₹5000"), newer
// ones as numbers; both must round-trip without failing the containing
// document.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps a decimal in an Amount.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// AmountFromFloat builds an Amount from a float64.
func AmountFromFloat(f float64) Amount {
	return Amount{Decimal: decimal.NewFromFloat(f)}
}

// UnmarshalJSON accepts a JSON number, a string with optional currency
// decoration, or null. Malformed values decode as zero.
func (a *Amount) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		a.Decimal = decimal.Zero
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		a.Decimal = Parse(s)
		return nil
	}

	var d decimal.Decimal
	if err := json.Unmarshal(data, &d); err == nil {
		a.Decimal = d
		return nil
	}

	a.Decimal = decimal.Zero
	return nil
}

// MarshalJSON emits the amount as a plain JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}
