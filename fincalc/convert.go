// Package fincalc provides deterministic financial math: currency conversion,
// tax, interest, fees, loan amortization, and discounted-cash-flow helpers.
// All monetary values are decimal.Decimal; functions reject invalid inputs
// with an error rather than returning silently-wrong numbers.
package fincalc

import (
	"github.com/shopspring/decimal"
)

// DefaultPrecision is the number of fractional digits used for currency
// codes not present in the precision table.
const DefaultPrecision int32 = 2

// currencyPrecision maps ISO-style currency codes to their minor-unit digits.
var currencyPrecision = map[string]int32{
	"USD": 2,
	"EUR": 2,
	"GBP": 2,
	"CHF": 2,
	"JPY": 0,
	"KRW": 0,
	"BHD": 3,
	"KWD": 3,
	"BTC": 8,
	"ETH": 8,
}

// Precision returns the number of fractional digits for a currency code,
// falling back to DefaultPrecision for unknown codes.
func Precision(currency string) int32 {
	if p, ok := currencyPrecision[currency]; ok {
		return p
	}
	return DefaultPrecision
}

// ConvertCurrency converts amount from one currency to another at the given
// rate, rounded to the target currency's precision.
func ConvertCurrency(amount decimal.Decimal, from, to string, rate decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Zero, ErrNegativeAmount
	}
	if !rate.IsPositive() {
		return decimal.Zero, ErrNonPositiveRate
	}
	// Only the target currency's precision affects the result.
	return amount.Mul(rate).Round(Precision(to)), nil
}

// SpreadQuote is the result of a spread-based currency conversion.
type SpreadQuote struct {
	BuyRate         decimal.Decimal
	SellRate        decimal.Decimal
	ConvertedAmount decimal.Decimal
}

// ConversionWithSpread quotes buy/sell rates around a mid-market rate and
// converts amount at the sell rate.
func ConversionWithSpread(amount, midRate, spread decimal.Decimal) (SpreadQuote, error) {
	if amount.IsNegative() {
		return SpreadQuote{}, ErrNegativeAmount
	}
	if !midRate.IsPositive() {
		return SpreadQuote{}, ErrNonPositiveRate
	}
	one := decimal.NewFromInt(1)
	buy := midRate.Mul(one.Sub(spread))
	sell := midRate.Mul(one.Add(spread))
	return SpreadQuote{
		BuyRate:         buy,
		SellRate:        sell,
		ConvertedAmount: amount.Mul(sell),
	}, nil
}
