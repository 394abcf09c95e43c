// Package types provides common type aliases and utilities.
package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal so pricing results stay bit-exact across
// price-list versions; floats are never involved in price math.
type Money = decimal.Decimal

// NewMoney creates a Money value from a float.
// WARNING: Use NewMoneyFromString for precise values.
func NewMoney(f float64) Money {
	return decimal.NewFromFloat(f)
}

// NewMoneyFromString creates a Money value from a string.
// This is the preferred method for monetary values.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// RoundMoney rounds to two decimal places (invoice semantics).
func RoundMoney(m Money) Money {
	return m.Round(2)
}

// ParseLocalizedPrice parses a locale-formatted price string as published
// by the tariff sheet: optional euro sign prefix and comma decimal
// separator ("€ 1,50" -> 1.50). An empty string parses to zero.
func ParseLocalizedPrice(raw string) (Money, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "€")
	// The feed occasionally arrives with the euro sign mangled into a
	// multi-byte sequence; strip anything that is not part of a number.
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == ',', r == '.', r == '-':
			return r
		}
		return -1
	}, s)
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
