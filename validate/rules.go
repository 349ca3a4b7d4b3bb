package validate

import (
	"time"

	"github.com/shopspring/decimal"

	"fincore/fincalc"
)

// Named rule bundles: each composes the primitive validators for a common
// scenario and returns the first aggregated error.

// StandardTransaction validates a routine transfer: structural transfer rules
// plus amount rules at the currency's native precision.
func StandardTransaction(in TransferInput) error {
	return All(
		Transfer(in),
		Amount(AmountInput{
			Amount:    in.Amount,
			Currency:  in.Currency,
			Precision: fincalc.Precision(in.Currency),
		}),
	)
}

// HighValueTransaction validates a high-value transfer, additionally
// enforcing the transaction-timing rules against the account's last activity.
func HighValueTransaction(in TransferInput, lastTransactionTime, now time.Time) error {
	if err := StandardTransaction(in); err != nil {
		return err
	}
	return Timing(lastTransactionTime, in.Amount, now).Err()
}

// InternationalTransfer validates a cross-currency transfer pair and its
// exchange rate.
func InternationalTransfer(from, to string, amount decimal.Decimal, exchangeRate *decimal.Decimal) error {
	return CrossCurrency(from, to, amount, exchangeRate).Err()
}
