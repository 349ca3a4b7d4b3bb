// Package validate holds the stateless business-rule validators for amounts,
// transfers, balances, cross-currency pairs, and transaction timing. Every
// validator returns a Result value so callers can aggregate violations;
// Result.Err converts an invalid result into a single error for callers that
// want fail-fast semantics.
package validate

import (
	"fmt"
	"strings"
)

// Error codes reported by the validators.
const (
	CodeNegativeAmount        = "NEGATIVE_AMOUNT"
	CodeInvalidCurrency       = "INVALID_CURRENCY"
	CodeInvalidPrecision      = "INVALID_PRECISION"
	CodeBelowMinimum          = "BELOW_MINIMUM"
	CodeAboveMaximum          = "ABOVE_MAXIMUM"
	CodeSameAccountTransfer   = "SAME_ACCOUNT_TRANSFER"
	CodeInvalidAccountID      = "INVALID_ACCOUNT_ID"
	CodeDescriptionTooLong    = "DESCRIPTION_TOO_LONG"
	CodeInvalidReference      = "INVALID_REFERENCE_FORMAT"
	CodeSavingsNegative       = "SAVINGS_NEGATIVE_BALANCE"
	CodeInsufficientFunds     = "INSUFFICIENT_FUNDS"
	CodeOverdraftLimit        = "OVERDRAFT_LIMIT_EXCEEDED"
	CodeInvalidExchangeRate   = "INVALID_EXCHANGE_RATE"
	CodeUnreasonableRate      = "UNREASONABLE_EXCHANGE_RATE"
	CodeTooFrequentHighValue  = "TOO_FREQUENT_HIGH_VALUE"
	CodeTooFrequent           = "TOO_FREQUENT"
)

// FieldError describes one business-rule violation.
type FieldError struct {
	Field   string
	Code    string
	Message string
	Value   any
}

// Result is the outcome of a validation: valid, or a list of violations.
// The zero value is not meaningful; use OK or the validators.
type Result struct {
	Valid  bool
	Errors []FieldError
}

// OK is a passing validation result.
func OK() Result {
	return Result{Valid: true}
}

// add records a violation and marks the result invalid.
func (r *Result) add(field, code, message string, value any) {
	r.Valid = false
	r.Errors = append(r.Errors, FieldError{Field: field, Code: code, Message: message, Value: value})
}

// Err returns nil for a valid result, or an error aggregating every
// violation. This is the fail-fast adapter over the accumulate-style API.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	parts := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		parts[i] = fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Field)
	}
	return fmt.Errorf("validation failed: %s", strings.Join(parts, "; "))
}

// All returns the first aggregated error among the given results, or nil when
// every result is valid.
func All(results ...Result) error {
	for _, r := range results {
		if err := r.Err(); err != nil {
			return err
		}
	}
	return nil
}
