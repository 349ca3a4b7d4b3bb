package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"fincore/fincalc"
)

// Transaction templates: thin compositions of the constructors for the
// common account flows.

// BankTransfer moves amount between two customer accounts.
func BankTransfer(fromAccountID, toAccountID string, amount decimal.Decimal, userID string) (Transaction, error) {
	desc := fmt.Sprintf("Bank transfer from %s to %s", fromAccountID, toAccountID)
	return NewTransfer(fromAccountID, toAccountID, amount, desc, userID)
}

// WithdrawalTxns pairs a cash withdrawal with its fee assessment.
type WithdrawalTxns struct {
	Transfer Transaction
	Fee      Transaction
}

// ATMWithdrawal dispenses amount from accountID via the ATM cash account and
// charges fee to fee revenue.
func ATMWithdrawal(accountID string, amount, fee decimal.Decimal, userID string) (WithdrawalTxns, error) {
	transfer, err := NewTransfer(accountID, AccountATMCash, amount, "ATM withdrawal", userID)
	if err != nil {
		return WithdrawalTxns{}, err
	}
	feeTxn, err := NewFee(accountID, AccountFeeRevenue, fee, "ATM withdrawal fee", userID)
	if err != nil {
		return WithdrawalTxns{}, err
	}
	return WithdrawalTxns{Transfer: transfer, Fee: feeTxn}, nil
}

// DepositTxns pairs a deposit with the interest it accrues.
type DepositTxns struct {
	Deposit  Transaction
	Interest Transaction
}

// InterestBearingDeposit credits a deposit to accountID from sourceAccountID
// and accrues simple interest on it for the given term.
func InterestBearingDeposit(sourceAccountID, accountID string, amount, annualRate decimal.Decimal, days int, userID string) (DepositTxns, error) {
	deposit, err := NewTransfer(sourceAccountID, accountID, amount, "Interest-bearing deposit", userID)
	if err != nil {
		return DepositTxns{}, err
	}

	result, err := fincalc.SimpleInterest(amount, annualRate, days)
	if err != nil {
		return DepositTxns{}, err
	}
	desc := fmt.Sprintf("Interest accrual over %d days", days)
	interest, err := NewInterest(AccountInterestPayable, accountID, result.InterestAmount, desc, userID)
	if err != nil {
		return DepositTxns{}, err
	}
	return DepositTxns{Deposit: deposit, Interest: interest}, nil
}
