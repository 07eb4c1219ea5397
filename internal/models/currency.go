package models

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultBaseCurrency is the quote currency of the NBP rate tables.
const DefaultBaseCurrency = "PLN"

// RateScale is the number of fraction digits kept for a mid rate; it
// matches the scale of the stored transaction rate.
const RateScale = 12

// defaultFraction is used for codes missing from the ISO table.
const defaultFraction = 2

// NormalizeCurrency trims and upper-cases a currency code.
func NormalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Fraction returns the number of minor-unit digits of the currency.
func Fraction(code string) int32 {
	if c := money.GetCurrency(NormalizeCurrency(code)); c != nil {
		return int32(c.Fraction)
	}
	return defaultFraction
}

// FitsPrecision reports whether amount has no more fractional digits than
// the currency allows.
func FitsPrecision(amount decimal.Decimal, code string) bool {
	return amount.Equal(amount.Truncate(Fraction(code)))
}

// RoundTo rounds amount half away from zero to the currency's precision.
func RoundTo(amount decimal.Decimal, code string) decimal.Decimal {
	return amount.Round(Fraction(code))
}

// Format renders amount with exactly the currency's fraction digits.
func Format(amount decimal.Decimal, code string) string {
	return amount.StringFixed(Fraction(code))
}

// RoundRate rounds a mid rate to RateScale digits.
func RoundRate(rate decimal.Decimal) decimal.Decimal {
	return rate.Round(RateScale)
}
