package fincalc

import (
	"github.com/shopspring/decimal"
)

// irrMaxIterations bounds the Newton-Raphson loop so IRR always terminates.
const irrMaxIterations = 100

// irrTolerance is the NPV magnitude below which the solver accepts a root.
var irrTolerance = decimal.RequireFromString("0.0000001")

// LoanPayment summarizes a fully amortized loan.
type LoanPayment struct {
	MonthlyPayment decimal.Decimal
	TotalPayment   decimal.Decimal
	TotalInterest  decimal.Decimal
}

// MonthlyPayment computes the standard amortized payment for a loan with the
// given annual rate over numMonths. A zero rate degenerates to straight-line
// repayment.
func MonthlyPayment(principal, annualRate decimal.Decimal, numMonths int) (LoanPayment, error) {
	if !principal.IsPositive() || annualRate.IsNegative() || numMonths <= 0 {
		return LoanPayment{}, ErrInvalidLoanParameters
	}

	months := decimal.NewFromInt(int64(numMonths))
	var payment decimal.Decimal
	if annualRate.IsZero() {
		payment = principal.Div(months).Round(2)
	} else {
		r := annualRate.Div(decimal.NewFromInt(12))
		growth := decimal.NewFromInt(1).Add(r).Pow(months)
		payment = principal.Mul(r).Mul(growth).
			Div(growth.Sub(decimal.NewFromInt(1))).
			Round(2)
	}

	total := payment.Mul(months)
	return LoanPayment{
		MonthlyPayment: payment,
		TotalPayment:   total,
		TotalInterest:  total.Sub(principal),
	}, nil
}

// AmortizationRow is one installment of an amortization schedule.
type AmortizationRow struct {
	Month     int
	Payment   decimal.Decimal
	Principal decimal.Decimal
	Interest  decimal.Decimal
	Balance   decimal.Decimal
}

// AmortizationSchedule produces the month-by-month repayment schedule for a
// loan. The final installment absorbs accumulated rounding so the ending
// balance is exactly zero.
func AmortizationSchedule(principal, annualRate decimal.Decimal, numMonths int) ([]AmortizationRow, error) {
	loan, err := MonthlyPayment(principal, annualRate, numMonths)
	if err != nil {
		return nil, err
	}

	monthlyRate := decimal.Zero
	if !annualRate.IsZero() {
		monthlyRate = annualRate.Div(decimal.NewFromInt(12))
	}

	schedule := make([]AmortizationRow, 0, numMonths)
	balance := principal
	for month := 1; month <= numMonths; month++ {
		interest := balance.Mul(monthlyRate).Round(2)
		payment := loan.MonthlyPayment
		principalPart := payment.Sub(interest)
		if month == numMonths {
			// Rounding adjustment: the last installment clears the balance.
			principalPart = balance
			payment = principalPart.Add(interest)
		}
		balance = balance.Sub(principalPart)
		schedule = append(schedule, AmortizationRow{
			Month:     month,
			Payment:   payment,
			Principal: principalPart,
			Interest:  interest,
			Balance:   balance,
		})
	}
	return schedule, nil
}

// LoanDetails bundles the payment summary with the full schedule.
type LoanDetails struct {
	MonthlyPayment decimal.Decimal
	TotalPayment   decimal.Decimal
	TotalInterest  decimal.Decimal
	Schedule       []AmortizationRow
}

// CalculateLoanDetails computes the payment summary and amortization schedule
// for a loan in one call.
func CalculateLoanDetails(principal, annualRate decimal.Decimal, numMonths int) (LoanDetails, error) {
	loan, err := MonthlyPayment(principal, annualRate, numMonths)
	if err != nil {
		return LoanDetails{}, err
	}
	schedule, err := AmortizationSchedule(principal, annualRate, numMonths)
	if err != nil {
		return LoanDetails{}, err
	}
	return LoanDetails{
		MonthlyPayment: loan.MonthlyPayment,
		TotalPayment:   loan.TotalPayment,
		TotalInterest:  loan.TotalInterest,
		Schedule:       schedule,
	}, nil
}

// NPV discounts a series of cash flows at the given rate. The first flow is
// undiscounted (period 0).
func NPV(cashFlows []decimal.Decimal, rate decimal.Decimal) (decimal.Decimal, error) {
	if rate.LessThanOrEqual(decimal.NewFromInt(-1)) {
		return decimal.Zero, ErrRateOutOfRange
	}
	one := decimal.NewFromInt(1)
	npv := decimal.Zero
	discount := one
	for _, cf := range cashFlows {
		npv = npv.Add(cf.Div(discount))
		discount = discount.Mul(one.Add(rate))
	}
	return npv, nil
}

// npvDerivative is d(NPV)/d(rate) at the given rate, used by the IRR solver.
func npvDerivative(cashFlows []decimal.Decimal, rate decimal.Decimal) decimal.Decimal {
	one := decimal.NewFromInt(1)
	deriv := decimal.Zero
	// d/dr CF_t/(1+r)^t = -t*CF_t/(1+r)^(t+1)
	discount := one.Add(rate)
	for t := 1; t < len(cashFlows); t++ {
		term := cashFlows[t].Mul(decimal.NewFromInt(int64(t))).Div(discount.Pow(decimal.NewFromInt(int64(t + 1))))
		deriv = deriv.Sub(term)
	}
	return deriv
}

// IRR finds the rate at which the cash flows' NPV is zero via Newton-Raphson,
// starting from guess. The iteration count is capped; non-convergence is an
// explicit error, never an infinite loop.
func IRR(cashFlows []decimal.Decimal, guess decimal.Decimal) (decimal.Decimal, error) {
	if len(cashFlows) < 2 {
		return decimal.Zero, ErrIRRNoConvergence
	}

	// A root requires at least one sign change in the flows.
	hasNegative, hasPositive := false, false
	for _, cf := range cashFlows {
		if cf.IsNegative() {
			hasNegative = true
		}
		if cf.IsPositive() {
			hasPositive = true
		}
	}
	if !hasNegative || !hasPositive {
		return decimal.Zero, ErrIRRNoConvergence
	}

	rate := guess
	for i := 0; i < irrMaxIterations; i++ {
		npv, err := NPV(cashFlows, rate)
		if err != nil {
			return decimal.Zero, ErrIRRNoConvergence
		}
		if npv.Abs().LessThan(irrTolerance) {
			return rate, nil
		}
		deriv := npvDerivative(cashFlows, rate)
		if deriv.IsZero() {
			return decimal.Zero, ErrIRRNoConvergence
		}
		next := rate.Sub(npv.Div(deriv))
		if next.LessThanOrEqual(decimal.NewFromInt(-1)) {
			// Keep the iterate inside the valid domain.
			next = rate.Sub(decimal.NewFromInt(1)).Div(decimal.NewFromInt(2))
			if next.LessThanOrEqual(decimal.NewFromInt(-1)) {
				return decimal.Zero, ErrIRRNoConvergence
			}
		}
		rate = next
	}
	return decimal.Zero, ErrIRRNoConvergence
}
