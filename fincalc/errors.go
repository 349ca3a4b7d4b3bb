package fincalc

import "errors"

var (
	// ErrNegativeAmount is returned when a conversion or tax calculation
	// receives a negative amount.
	ErrNegativeAmount = errors.New("cannot convert negative amounts")

	// ErrNonPositiveRate is returned when an exchange rate is zero or negative.
	ErrNonPositiveRate = errors.New("exchange rate must be positive")

	// ErrInvalidTaxRate is returned when a tax rate falls outside [0, 1].
	ErrInvalidTaxRate = errors.New("tax rate must be between 0 and 1")

	// ErrNegativeParameter is returned when an interest calculation receives
	// a negative principal, rate, or day count.
	ErrNegativeParameter = errors.New("parameters must not be negative")

	// ErrInvalidLoanParameters is returned when a loan calculation receives a
	// non-positive principal or term, or a negative rate.
	ErrInvalidLoanParameters = errors.New("invalid loan parameters")

	// ErrRateOutOfRange is returned when a discount rate makes the discount
	// factor undefined (rate <= -1).
	ErrRateOutOfRange = errors.New("rate must be greater than -1")

	// ErrIRRNoConvergence is returned when the IRR solver exhausts its
	// iteration cap without finding a root.
	ErrIRRNoConvergence = errors.New("IRR calculation failed to converge")
)
