package fincalc

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TaxResult breaks a taxed amount into its components.
type TaxResult struct {
	Amount      decimal.Decimal
	TaxRate     decimal.Decimal
	TaxAmount   decimal.Decimal
	TotalAmount decimal.Decimal
	TaxType     string
}

// Tax applies a fractional tax rate (0..1) to amount.
func Tax(amount, rate decimal.Decimal) (TaxResult, error) {
	if amount.IsNegative() {
		return TaxResult{}, ErrNegativeAmount
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return TaxResult{}, ErrInvalidTaxRate
	}
	tax := amount.Mul(rate).Round(2)
	return TaxResult{
		Amount:      amount,
		TaxRate:     rate,
		TaxAmount:   tax,
		TotalAmount: amount.Add(tax),
		TaxType:     "STANDARD",
	}, nil
}

// Compounding selects the compounding frequency for interest calculations.
type Compounding string

const (
	CompoundDaily     Compounding = "daily"
	CompoundMonthly   Compounding = "monthly"
	CompoundQuarterly Compounding = "quarterly"
	CompoundAnnually  Compounding = "annually"
)

// periodsPerYear returns the number of compounding periods in a year.
func periodsPerYear(c Compounding) (int64, error) {
	switch c {
	case CompoundDaily:
		return 365, nil
	case CompoundMonthly:
		return 12, nil
	case CompoundQuarterly:
		return 4, nil
	case CompoundAnnually:
		return 1, nil
	default:
		return 0, fmt.Errorf("unknown compounding frequency %q", c)
	}
}

// InterestResult is the outcome of an interest calculation.
type InterestResult struct {
	Principal      decimal.Decimal
	AnnualRate     decimal.Decimal
	Days           int
	InterestAmount decimal.Decimal
	TotalAmount    decimal.Decimal
}

// CompoundInterest accrues interest on principal over the given number of
// days, compounded at the chosen frequency.
func CompoundInterest(principal, annualRate decimal.Decimal, days int, compounding Compounding) (InterestResult, error) {
	if principal.IsNegative() || annualRate.IsNegative() || days < 0 {
		return InterestResult{}, ErrNegativeParameter
	}
	periods, err := periodsPerYear(compounding)
	if err != nil {
		return InterestResult{}, err
	}
	effective := annualRate.Div(decimal.NewFromInt(periods))
	growth := decimal.NewFromInt(1).Add(effective).Pow(decimal.NewFromInt(int64(days)))
	interest := principal.Mul(growth.Sub(decimal.NewFromInt(1))).Round(2)
	return InterestResult{
		Principal:      principal,
		AnnualRate:     annualRate,
		Days:           days,
		InterestAmount: interest,
		TotalAmount:    principal.Add(interest),
	}, nil
}

// SimpleInterest accrues non-compounding interest over days/365 of a year.
func SimpleInterest(principal, annualRate decimal.Decimal, days int) (InterestResult, error) {
	if principal.IsNegative() || annualRate.IsNegative() || days < 0 {
		return InterestResult{}, ErrNegativeParameter
	}
	interest := principal.
		Mul(annualRate).
		Mul(decimal.NewFromInt(int64(days))).
		Div(decimal.NewFromInt(365)).
		Round(2)
	return InterestResult{
		Principal:      principal,
		AnnualRate:     annualRate,
		Days:           days,
		InterestAmount: interest,
		TotalAmount:    principal.Add(interest),
	}, nil
}

// BalanceSummaryResult reports a balance alongside its available portion.
type BalanceSummaryResult struct {
	Balance          decimal.Decimal
	PendingDebits    decimal.Decimal
	PendingCredits   decimal.Decimal
	Hold             decimal.Decimal
	AvailableBalance decimal.Decimal
}

// BalanceSummary computes the available balance after pending activity and holds.
func BalanceSummary(balance, pendingDebits, pendingCredits, hold decimal.Decimal) BalanceSummaryResult {
	return BalanceSummaryResult{
		Balance:          balance,
		PendingDebits:    pendingDebits,
		PendingCredits:   pendingCredits,
		Hold:             hold,
		AvailableBalance: balance.Sub(pendingDebits).Sub(hold).Add(pendingCredits),
	}
}

// FeeSchedule describes how a transaction fee is assessed. Min and Max are
// optional clamps on the computed fee.
type FeeSchedule struct {
	Fixed      decimal.Decimal
	Percentage decimal.Decimal
	Min        *decimal.Decimal
	Max        *decimal.Decimal
}

// TransactionFee computes fixed + percentage*amount, clamped to the
// schedule's bounds when present.
func TransactionFee(amount decimal.Decimal, schedule FeeSchedule) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Zero, ErrNegativeAmount
	}
	fee := schedule.Fixed.Add(schedule.Percentage.Mul(amount))
	if schedule.Min != nil && fee.LessThan(*schedule.Min) {
		fee = *schedule.Min
	}
	if schedule.Max != nil && fee.GreaterThan(*schedule.Max) {
		fee = *schedule.Max
	}
	return fee.Round(2), nil
}

// Totals is an itemized amount-plus-fee total.
type Totals struct {
	Subtotal decimal.Decimal
	Fee      decimal.Decimal
	Total    decimal.Decimal
}

// TotalWithFees applies a fee schedule to amount and returns the itemized total.
func TotalWithFees(amount decimal.Decimal, schedule FeeSchedule) (Totals, error) {
	fee, err := TransactionFee(amount, schedule)
	if err != nil {
		return Totals{}, err
	}
	return Totals{
		Subtotal: amount,
		Fee:      fee,
		Total:    amount.Add(fee),
	}, nil
}
