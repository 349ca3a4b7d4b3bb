// Package ledger implements the double-entry bookkeeping core: it constructs,
// validates, and reverses balanced transactions, derives account balances from
// entry streams, and enforces account-type constraints and the trial-balance
// invariant. It is pure computation over caller-supplied data; persistence is
// an external concern.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ValidateDoubleEntry checks the structural invariants of a double-entry
// transaction: at least two entries, exactly one side per entry, positive
// amounts, and total debits equal to total credits.
func ValidateDoubleEntry(txn Transaction) error {
	if len(txn.Entries) < 2 {
		return errors.New("transaction must have at least 2 entries")
	}

	debits := decimal.Zero
	credits := decimal.Zero
	for _, e := range txn.Entries {
		if e.Debit && e.Credit {
			return errors.New("entry cannot be both debit and credit")
		}
		if !e.Debit && !e.Credit {
			return errors.New("entry must be either debit or credit")
		}
		if !e.Amount.IsPositive() {
			return errors.New("entry amounts must be positive")
		}
		if e.Debit {
			debits = debits.Add(e.Amount)
		} else {
			credits = credits.Add(e.Amount)
		}
	}

	if !debits.Equal(credits) {
		return fmt.Errorf("transaction is not balanced: debits %s, credits %s", debits, credits)
	}
	return nil
}

// newTransaction assembles and validates a two-entry pending transaction:
// amount is debited from debitAcct and credited to creditAcct.
func newTransaction(debitAcct, creditAcct string, amount decimal.Decimal, description, userID string) (Transaction, error) {
	now := time.Now()
	txnID := uuid.NewString()
	txn := Transaction{
		ID:          txnID,
		Description: description,
		Timestamp:   now,
		UserID:      userID,
		Status:      StatusPending,
		Entries: []Entry{
			{
				ID:            uuid.NewString(),
				AccountID:     debitAcct,
				Amount:        amount,
				Debit:         true,
				Description:   description,
				Timestamp:     now,
				UserID:        userID,
				TransactionID: txnID,
			},
			{
				ID:            uuid.NewString(),
				AccountID:     creditAcct,
				Amount:        amount,
				Credit:        true,
				Description:   description,
				Timestamp:     now,
				UserID:        userID,
				TransactionID: txnID,
			},
		},
	}
	if err := ValidateDoubleEntry(txn); err != nil {
		return Transaction{}, err
	}
	return txn, nil
}

// NewTransfer constructs a balanced transfer: debit the source account,
// credit the destination account.
func NewTransfer(fromAccountID, toAccountID string, amount decimal.Decimal, description, userID string) (Transaction, error) {
	return newTransaction(fromAccountID, toAccountID, amount, description, userID)
}

// NewFee constructs a fee assessment: debit the charged account, credit the
// fee revenue account.
func NewFee(accountID, revenueAccountID string, amount decimal.Decimal, description, userID string) (Transaction, error) {
	return newTransaction(accountID, revenueAccountID, amount, description, userID)
}

// NewInterest constructs an interest credit: debit the interest-payable
// account, credit the receiving account.
func NewInterest(payableAccountID, receivingAccountID string, amount decimal.Decimal, description, userID string) (Transaction, error) {
	return newTransaction(payableAccountID, receivingAccountID, amount, description, userID)
}

// CalculateBalance folds every entry for accountID into a derived balance.
// Zero matching entries yield zero balances.
func CalculateBalance(entries []Entry, accountID string) Balance {
	bal := Balance{
		AccountID:     accountID,
		DebitBalance:  decimal.Zero,
		CreditBalance: decimal.Zero,
		NetBalance:    decimal.Zero,
		LastUpdated:   time.Now(),
	}
	for _, e := range entries {
		if e.AccountID != accountID {
			continue
		}
		switch {
		case e.Debit:
			bal.DebitBalance = bal.DebitBalance.Add(e.Amount)
		case e.Credit:
			bal.CreditBalance = bal.CreditBalance.Add(e.Amount)
		}
	}
	bal.NetBalance = bal.DebitBalance.Sub(bal.CreditBalance)
	return bal
}

// ValidateAccountConstraints projects each account's net balance after the
// transaction and enforces per-type policy: checking accounts tolerate
// overdraft down to -OverdraftLimit, savings accounts must never go negative.
// Accounts without a known type are unconstrained.
func ValidateAccountConstraints(txn Transaction, balances map[string]Balance, types map[string]AccountType) error {
	projected := make(map[string]decimal.Decimal)
	for _, e := range txn.Entries {
		net, ok := projected[e.AccountID]
		if !ok {
			net = balances[e.AccountID].NetBalance
		}
		if e.Debit {
			net = net.Add(e.Amount)
		} else {
			net = net.Sub(e.Amount)
		}
		projected[e.AccountID] = net
	}

	for _, e := range txn.Entries {
		net := projected[e.AccountID]
		switch types[e.AccountID] {
		case AccountChecking:
			if net.LessThan(OverdraftLimit.Neg()) {
				return fmt.Errorf("overdraft limit exceeded for account %s", e.AccountID)
			}
		case AccountSavings:
			if net.IsNegative() {
				return fmt.Errorf("insufficient funds in savings account %s", e.AccountID)
			}
		}
	}
	return nil
}

// Reverse builds a new pending transaction whose entries invert the
// original's debit/credit flags, referencing the original transaction.
func Reverse(original Transaction, reason, userID string) (Transaction, error) {
	if len(original.Entries) == 0 {
		return Transaction{}, errors.New("cannot reverse a transaction with no entries")
	}

	now := time.Now()
	txnID := uuid.NewString()
	entries := make([]Entry, len(original.Entries))
	for i, e := range original.Entries {
		entries[i] = Entry{
			ID:            uuid.NewString(),
			AccountID:     e.AccountID,
			Amount:        e.Amount,
			Debit:         e.Credit,
			Credit:        e.Debit,
			Description:   fmt.Sprintf("Reversal of %s", e.Description),
			Timestamp:     now,
			UserID:        userID,
			TransactionID: txnID,
		}
	}

	txn := Transaction{
		ID:          txnID,
		Entries:     entries,
		Description: fmt.Sprintf("Reversal of %s", original.ID),
		Timestamp:   now,
		UserID:      userID,
		Status:      StatusPending,
		Reference:   original.ID,
		Metadata: map[string]any{
			"originalTransactionId": original.ID,
			"reversalReason":        reason,
		},
	}
	if err := ValidateDoubleEntry(txn); err != nil {
		return Transaction{}, err
	}
	return txn, nil
}

// ValidateTrialBalance checks that total debits equal total credits across
// all account balances.
func ValidateTrialBalance(balances []Balance) error {
	debits := decimal.Zero
	credits := decimal.Zero
	for _, b := range balances {
		debits = debits.Add(b.DebitBalance)
		credits = credits.Add(b.CreditBalance)
	}
	if !debits.Equal(credits) {
		return fmt.Errorf("trial balance is not balanced: debits %s, credits %s", debits, credits)
	}
	return nil
}

// NewAdjustingEntry constructs a two-entry adjustment between accountID and
// the adjustment clearing account, tagged as an adjusting entry.
func NewAdjustingEntry(accountID string, amount decimal.Decimal, isDebit bool, description, userID string) (Transaction, error) {
	debitAcct, creditAcct := accountID, AccountAdjustmentClearing
	if !isDebit {
		debitAcct, creditAcct = AccountAdjustmentClearing, accountID
	}
	txn, err := newTransaction(debitAcct, creditAcct, amount, description, userID)
	if err != nil {
		return Transaction{}, err
	}
	txn.Metadata = map[string]any{"isAdjustingEntry": true}
	return txn, nil
}
