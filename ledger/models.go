package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType governs the balance policy applied to an account.
type AccountType string

const (
	AccountChecking AccountType = "CHECKING" // overdraft tolerated down to -OverdraftLimit
	AccountSavings  AccountType = "SAVINGS"  // must never go negative
)

// Status tracks where a transaction is in its lifecycle. This package only
// constructs pending transactions and validates them; applying posted or
// reversed transactions to a store is the caller's concern.
type Status string

const (
	StatusPending  Status = "pending"
	StatusPosted   Status = "posted"
	StatusReversed Status = "reversed"
)

// Well-known internal accounts used by constructors and templates.
const (
	AccountFeeRevenue         = "FEE_REVENUE"
	AccountInterestPayable    = "INTEREST_PAYABLE"
	AccountAdjustmentClearing = "ADJUSTMENT_CLEARING"
	AccountATMCash            = "ATM_CASH"
)

// OverdraftLimit is the most-negative net balance a checking account may
// reach before a transaction is rejected.
var OverdraftLimit = decimal.NewFromInt(10000)

// Entry is one row of a double-entry transaction. Exactly one of Debit and
// Credit must be true and Amount must be positive; both invariants are
// enforced by ValidateDoubleEntry rather than by construction, so malformed
// caller-supplied entries are representable and rejectable.
type Entry struct {
	ID            string
	AccountID     string
	Amount        decimal.Decimal // always positive
	Debit         bool
	Credit        bool
	Description   string
	Timestamp     time.Time
	UserID        string
	TransactionID string
}

// Transaction is a balanced set of at least two ledger entries. Once
// constructed it is never mutated; a reversal is a new transaction pointing
// back via Reference and metadata.
type Transaction struct {
	ID          string
	Entries     []Entry
	Description string
	Timestamp   time.Time
	UserID      string
	Status      Status
	Reference   string
	Metadata    map[string]any
}

// Balance is the derived position of a single account. It is never mutated
// in place; CalculateBalance recomputes it from an entry stream.
type Balance struct {
	AccountID     string
	DebitBalance  decimal.Decimal
	CreditBalance decimal.Decimal
	NetBalance    decimal.Decimal // DebitBalance - CreditBalance
	LastUpdated   time.Time
}
