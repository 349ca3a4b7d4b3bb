package validate

import (
	"fmt"
	"regexp"
	"time"

	"github.com/shopspring/decimal"

	"fincore/ledger"
)

// Tunable thresholds for the timing and cross-currency validators.
var (
	// HighValueThreshold marks the amount at which rapid repeat transactions
	// are rejected.
	HighValueThreshold = decimal.NewFromInt(1000)

	// MaxReasonableRate is the sanity ceiling for exchange rates.
	MaxReasonableRate = decimal.NewFromInt(10000)

	// OverdraftLimit is the deepest overdraft allowed when overdraft is enabled.
	OverdraftLimit = decimal.NewFromInt(10000)
)

const (
	highValueMinInterval = 60 * time.Second
	minInterval          = 6 * time.Second
	maxDescriptionLen    = 500
)

var (
	currencyPattern  = regexp.MustCompile(`^[A-Z]{3}$`)
	referencePattern = regexp.MustCompile(`^[a-zA-Z0-9]{1,50}$`)
)

// AmountInput describes a monetary amount to validate.
type AmountInput struct {
	Amount    decimal.Decimal
	Currency  string
	Precision int32
	Min       *decimal.Decimal
	Max       *decimal.Decimal
}

// Amount validates a monetary amount against its currency, precision, and
// optional bounds.
func Amount(in AmountInput) Result {
	r := OK()
	if in.Amount.IsNegative() {
		r.add("amount", CodeNegativeAmount, "amount must not be negative", in.Amount)
	}
	if !currencyPattern.MatchString(in.Currency) {
		r.add("currency", CodeInvalidCurrency, "currency must be a 3-letter code", in.Currency)
	}
	if -in.Amount.Exponent() > in.Precision {
		r.add("amount", CodeInvalidPrecision,
			fmt.Sprintf("amount exceeds %d decimal places", in.Precision), in.Amount)
	}
	if in.Min != nil && in.Amount.LessThan(*in.Min) {
		r.add("amount", CodeBelowMinimum,
			fmt.Sprintf("amount is below the minimum of %s", in.Min), in.Amount)
	}
	if in.Max != nil && in.Amount.GreaterThan(*in.Max) {
		r.add("amount", CodeAboveMaximum,
			fmt.Sprintf("amount is above the maximum of %s", in.Max), in.Amount)
	}
	return r
}

// TransferInput describes a transfer to validate.
type TransferInput struct {
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	Currency      string
	Description   string
	Reference     string
}

// Transfer validates the structural rules of a transfer request.
func Transfer(in TransferInput) Result {
	r := OK()
	if in.FromAccountID == "" {
		r.add("fromAccountId", CodeInvalidAccountID, "account id must not be empty", in.FromAccountID)
	}
	if in.ToAccountID == "" {
		r.add("toAccountId", CodeInvalidAccountID, "account id must not be empty", in.ToAccountID)
	}
	if in.FromAccountID != "" && in.FromAccountID == in.ToAccountID {
		r.add("toAccountId", CodeSameAccountTransfer, "cannot transfer to the same account", in.ToAccountID)
	}
	if len(in.Description) > maxDescriptionLen {
		r.add("description", CodeDescriptionTooLong,
			fmt.Sprintf("description must be at most %d characters", maxDescriptionLen), len(in.Description))
	}
	if in.Reference != "" && !referencePattern.MatchString(in.Reference) {
		r.add("reference", CodeInvalidReference, "reference must be alphanumeric, 1-50 characters", in.Reference)
	}
	return r
}

// Balance validates that debiting transactionAmount from currentBalance
// respects the account type's balance policy.
func Balance(currentBalance, transactionAmount decimal.Decimal, accountType ledger.AccountType, allowOverdraft bool) Result {
	r := OK()
	newBalance := currentBalance.Sub(transactionAmount)
	switch {
	case accountType == ledger.AccountSavings && newBalance.IsNegative():
		r.add("amount", CodeSavingsNegative, "savings accounts cannot go negative", newBalance)
	case !allowOverdraft && newBalance.IsNegative():
		r.add("amount", CodeInsufficientFunds, "insufficient funds", newBalance)
	case allowOverdraft && newBalance.LessThan(OverdraftLimit.Neg()):
		r.add("amount", CodeOverdraftLimit,
			fmt.Sprintf("balance cannot go below -%s", OverdraftLimit), newBalance)
	}
	return r
}

// CrossCurrency validates a currency pair and, when the currencies differ,
// its exchange rate. Same-currency pairs need no rate.
func CrossCurrency(from, to string, amount decimal.Decimal, exchangeRate *decimal.Decimal) Result {
	r := OK()
	if amount.IsNegative() {
		r.add("amount", CodeNegativeAmount, "amount must not be negative", amount)
	}
	if from == to {
		return r
	}
	if exchangeRate == nil || !exchangeRate.IsPositive() {
		r.add("exchangeRate", CodeInvalidExchangeRate, "exchange rate must be positive for cross-currency transactions", exchangeRate)
		return r
	}
	if exchangeRate.GreaterThan(MaxReasonableRate) {
		r.add("exchangeRate", CodeUnreasonableRate,
			fmt.Sprintf("exchange rate exceeds sane bound of %s", MaxReasonableRate), exchangeRate)
	}
	return r
}

// Timing validates transaction frequency: high-value transactions must be at
// least a minute apart, and any transaction at least six seconds apart.
func Timing(lastTransactionTime time.Time, amount decimal.Decimal, now time.Time) Result {
	r := OK()
	elapsed := now.Sub(lastTransactionTime)
	if amount.GreaterThanOrEqual(HighValueThreshold) && elapsed < highValueMinInterval {
		r.add("timestamp", CodeTooFrequentHighValue,
			"high-value transactions must be at least 60 seconds apart", elapsed)
	}
	if elapsed < minInterval {
		r.add("timestamp", CodeTooFrequent, "transactions must be at least 6 seconds apart", elapsed)
	}
	return r
}
