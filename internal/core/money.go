// Package core provides money parsing and handling utilities.
//
// Amounts are whole currency units. The display layer never shows fractional
// digits, so parsing rounds to the nearest unit before validating.
package core

import (
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the ISO code used when none is configured.
const DefaultCurrency = money.IDR

type Money struct {
	Units int64
}

// Units is a shorthand constructor.
func Units(n int64) Money {
	return Money{Units: n}
}

// ParseAmount converts user input to a positive amount of whole units.
//
// Thousands separators (spaces, underscores and commas) are ignored and a dot
// is the decimal separator. Fractions are rounded half-up.
//
// Examples:
//
//	ParseAmount("250000")     -> 250000, nil
//	ParseAmount("12,000,000") -> 12000000, nil
//	ParseAmount("19.5")       -> 20, nil
//	ParseAmount("0.4")        -> error (rounds to zero)
func ParseAmount(s string) (Money, error) {
	d, ok := parseUnits(s)
	if !ok || !d.IsPositive() {
		return Money{}, &ValidationError{Field: "amount", Err: ErrInvalidAmount}
	}
	return Money{Units: d.IntPart()}, nil
}

// ParseGoal converts user input to a savings goal. Blank input and anything
// that rounds to zero yield the zero goal, which clears it.
func ParseGoal(s string) (Money, error) {
	if strings.TrimSpace(s) == "" {
		return Money{}, nil
	}
	d, ok := parseUnits(s)
	if !ok {
		return Money{}, &ValidationError{Field: "goal", Err: ErrInvalidAmount}
	}
	if d.IsNegative() {
		return Money{}, &ValidationError{Field: "goal", Err: ErrNegativeGoal}
	}
	return Money{Units: d.IntPart()}, nil
}

// parseUnits strips thousands separators and rounds to whole units.
// ok is false for non-numeric input or values outside int64.
func parseUnits(s string) (d decimal.Decimal, ok bool) {
	s = strings.NewReplacer(",", "", "_", "", " ", "").Replace(strings.TrimSpace(s))
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	d = d.Round(0)
	return d, d.BigInt().IsInt64()
}

func (m Money) Validate() error {
	if m.Units <= 0 {
		return &ValidationError{Field: "amount", Err: ErrInvalidAmount}
	}
	return nil
}

func (m Money) Add(n Money) Money { return Money{Units: m.Units + n.Units} }
func (m Money) Sub(n Money) Money { return Money{Units: m.Units - n.Units} }
func (m Money) IsZero() bool      { return m.Units == 0 }

// Abs returns the magnitude of m.
func (m Money) Abs() Money {
	if m.Units < 0 {
		return Money{Units: -m.Units}
	}
	return m
}

// String returns the plain integer representation, as used in exports.
func (m Money) String() string {
	return strconv.FormatInt(m.Units, 10)
}

// Format renders m for display in the given currency with no fractional digits.
// Unknown currency codes fall back to DefaultCurrency.
func (m Money) Format(code string) string {
	cur := money.GetCurrency(code)
	if cur == nil {
		cur = money.GetCurrency(DefaultCurrency)
	}
	f := money.NewFormatter(0, cur.Decimal, cur.Thousand, cur.Grapheme, cur.Template)
	return f.Format(m.Units)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	d, err := decimal.NewFromString(strings.Trim(string(b), `"`))
	if err != nil {
		return &ValidationError{Field: "amount", Err: ErrInvalidAmount}
	}
	d = d.Round(0)
	if !d.BigInt().IsInt64() {
		return &ValidationError{Field: "amount", Err: ErrInvalidAmount}
	}
	m.Units = d.IntPart()
	return nil
}
