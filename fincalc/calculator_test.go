package fincalc

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestConvertCurrency(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		from   string
		to     string
		rate   string
		want   string
	}{
		{name: "usd to jpy rounds to whole yen", amount: "100", from: "USD", to: "JPY", rate: "110.123", want: "11012"},
		{name: "eur to usd keeps two decimals", amount: "100", from: "EUR", to: "USD", rate: "1.2345", want: "123.45"},
		{name: "usd to btc keeps eight decimals", amount: "1", from: "USD", to: "BTC", rate: "0.000012345678", want: "0.00001235"},
		{name: "unknown target code defaults to two decimals", amount: "10", from: "USD", to: "XXX", rate: "3.14159", want: "31.42"},
		{name: "zero amount", amount: "0", from: "USD", to: "EUR", rate: "0.9", want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConvertCurrency(dec(tt.amount), tt.from, tt.to, dec(tt.rate))
			require.NoError(t, err)
			assert.True(t, got.Equal(dec(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestConvertCurrencyRejectsBadInput(t *testing.T) {
	_, err := ConvertCurrency(dec("-1"), "USD", "EUR", dec("0.9"))
	assert.ErrorIs(t, err, ErrNegativeAmount)

	_, err = ConvertCurrency(dec("100"), "USD", "EUR", decimal.Zero)
	assert.ErrorIs(t, err, ErrNonPositiveRate)

	_, err = ConvertCurrency(dec("100"), "USD", "EUR", dec("-0.9"))
	assert.ErrorIs(t, err, ErrNonPositiveRate)
}

func TestConvertCurrencyPrecisionTable(t *testing.T) {
	assert.Equal(t, int32(0), Precision("JPY"))
	assert.Equal(t, int32(2), Precision("USD"))
	assert.Equal(t, int32(3), Precision("KWD"))
	assert.Equal(t, int32(8), Precision("BTC"))
	assert.Equal(t, DefaultPrecision, Precision("ZZZ"))
}

func TestTax(t *testing.T) {
	result, err := Tax(dec("100"), dec("0.08"))
	require.NoError(t, err)
	assert.True(t, result.TaxAmount.Equal(dec("8")))
	assert.True(t, result.TotalAmount.Equal(dec("108")))
	assert.Equal(t, "STANDARD", result.TaxType)
}

func TestTaxRounding(t *testing.T) {
	result, err := Tax(dec("19.99"), dec("0.0825"))
	require.NoError(t, err)
	// 19.99 * 0.0825 = 1.649175 -> 1.65
	assert.True(t, result.TaxAmount.Equal(dec("1.65")), "tax: %s", result.TaxAmount)
	assert.True(t, result.TotalAmount.Equal(dec("21.64")))
}

func TestTaxRejectsBadInput(t *testing.T) {
	_, err := Tax(dec("-1"), dec("0.1"))
	assert.ErrorIs(t, err, ErrNegativeAmount)

	_, err = Tax(dec("100"), dec("1.5"))
	assert.ErrorIs(t, err, ErrInvalidTaxRate)

	_, err = Tax(dec("100"), dec("-0.1"))
	assert.ErrorIs(t, err, ErrInvalidTaxRate)
}

func TestSimpleInterest(t *testing.T) {
	result, err := SimpleInterest(dec("1000"), dec("0.0365"), 100)
	require.NoError(t, err)
	assert.True(t, result.InterestAmount.Equal(dec("10")), "interest: %s", result.InterestAmount)
	assert.True(t, result.TotalAmount.Equal(dec("1010")))
}

func TestCompoundInterest(t *testing.T) {
	// Daily compounding at 36.5% for 2 days: effective rate 0.001 per day,
	// growth 1.002001, interest 2.00 on 1000.
	result, err := CompoundInterest(dec("1000"), dec("0.365"), 2, CompoundDaily)
	require.NoError(t, err)
	assert.True(t, result.InterestAmount.Equal(dec("2")), "interest: %s", result.InterestAmount)
	assert.True(t, result.TotalAmount.Equal(dec("1002")))
}

func TestCompoundInterestZeroDays(t *testing.T) {
	result, err := CompoundInterest(dec("1000"), dec("0.05"), 0, CompoundDaily)
	require.NoError(t, err)
	assert.True(t, result.InterestAmount.IsZero())
	assert.True(t, result.TotalAmount.Equal(dec("1000")))
}

func TestCompoundInterestRejectsBadInput(t *testing.T) {
	_, err := CompoundInterest(dec("-1"), dec("0.05"), 10, CompoundDaily)
	assert.ErrorIs(t, err, ErrNegativeParameter)

	_, err = CompoundInterest(dec("1000"), dec("-0.05"), 10, CompoundDaily)
	assert.ErrorIs(t, err, ErrNegativeParameter)

	_, err = CompoundInterest(dec("1000"), dec("0.05"), -1, CompoundDaily)
	assert.ErrorIs(t, err, ErrNegativeParameter)

	_, err = CompoundInterest(dec("1000"), dec("0.05"), 10, Compounding("weekly"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown compounding")
}

func TestBalanceSummary(t *testing.T) {
	summary := BalanceSummary(dec("1000"), dec("200"), dec("100"), dec("50"))
	assert.True(t, summary.AvailableBalance.Equal(dec("850")), "available: %s", summary.AvailableBalance)
}

func TestTransactionFee(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		schedule FeeSchedule
		want     string
	}{
		{
			name:     "minimum fee wins over low computed fee",
			amount:   "10",
			schedule: FeeSchedule{Fixed: dec("0.5"), Percentage: dec("0.01"), Min: decPtr("2.0")},
			want:     "2.00",
		},
		{
			name:     "maximum fee caps a high computed fee",
			amount:   "100000",
			schedule: FeeSchedule{Percentage: dec("0.01"), Max: decPtr("25")},
			want:     "25",
		},
		{
			name:     "unclamped fixed plus percentage",
			amount:   "200",
			schedule: FeeSchedule{Fixed: dec("1"), Percentage: dec("0.025")},
			want:     "6.00",
		},
		{
			name:     "zero schedule",
			amount:   "500",
			schedule: FeeSchedule{},
			want:     "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee, err := TransactionFee(dec(tt.amount), tt.schedule)
			require.NoError(t, err)
			assert.True(t, fee.Equal(dec(tt.want)), "got %s, want %s", fee, tt.want)
		})
	}

	_, err := TransactionFee(dec("-1"), FeeSchedule{})
	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestTotalWithFees(t *testing.T) {
	totals, err := TotalWithFees(dec("100"), FeeSchedule{Fixed: dec("0.30"), Percentage: dec("0.029")})
	require.NoError(t, err)
	assert.True(t, totals.Subtotal.Equal(dec("100")))
	assert.True(t, totals.Fee.Equal(dec("3.20")), "fee: %s", totals.Fee)
	assert.True(t, totals.Total.Equal(dec("103.20")))
}

func TestConversionWithSpread(t *testing.T) {
	quote, err := ConversionWithSpread(dec("100"), dec("1.10"), dec("0.02"))
	require.NoError(t, err)
	assert.True(t, quote.BuyRate.Equal(dec("1.078")), "buy: %s", quote.BuyRate)
	assert.True(t, quote.SellRate.Equal(dec("1.122")), "sell: %s", quote.SellRate)
	assert.True(t, quote.ConvertedAmount.Equal(dec("112.2")), "converted: %s", quote.ConvertedAmount)
}

func TestConversionWithSpreadRejectsBadInput(t *testing.T) {
	_, err := ConversionWithSpread(dec("-1"), dec("1.1"), dec("0.02"))
	assert.ErrorIs(t, err, ErrNegativeAmount)

	_, err = ConversionWithSpread(dec("100"), decimal.Zero, dec("0.02"))
	assert.ErrorIs(t, err, ErrNonPositiveRate)
}
