// internal/domain/summary_test.go
package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), append([]any{"want %s, got %s", want, got.String()}, msgAndArgs...)...)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)

	assert.Equal(t, 0, s.TotalTransactions)
	assertDecimal(t, "0", s.TotalIncome)
	assertDecimal(t, "0", s.TotalExpenses)
	assertDecimal(t, "0", s.NetBalance)
	assert.NotNil(t, s.Categories)
	assert.Empty(t, s.Categories)
	assert.NotNil(t, s.TransactionTypes)
	assert.Empty(t, s.TransactionTypes)
	assert.Nil(t, s.LatestTransactionDate)
	assert.Nil(t, s.EarliestTransactionDate)

	raw, err := json.Marshal(s)
	require.NoError(t, err)
	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.NotContains(t, fields, "latest_transaction_date")
	assert.NotContains(t, fields, "earliest_transaction_date")
	assert.Contains(t, fields, "categories")
}

func TestSummarize_Totals(t *testing.T) {
	s := Summarize([]Transaction{
		newTx("1", "salary", TransactionTypeIncome, "1000", day(2024, 1, 1)),
		newTx("2", "rent", TransactionTypeExpense, "-400", day(2024, 1, 2)),
		newTx("3", "food", TransactionTypeExpense, "-100", day(2024, 1, 3)),
	})

	assert.Equal(t, 3, s.TotalTransactions)
	assertDecimal(t, "1000", s.TotalIncome)
	assertDecimal(t, "500", s.TotalExpenses)
	assertDecimal(t, "500", s.NetBalance)
}

func TestSummarize_CategoryTotalsAreSignedTypeTotalsAbsolute(t *testing.T) {
	s := Summarize([]Transaction{
		newTx("1", "food", TransactionTypeIncome, "100", day(2024, 1, 1)),
		newTx("2", "food", TransactionTypeExpense, "-30", day(2024, 1, 2)),
	})

	require.Contains(t, s.Categories, "food")
	assertDecimal(t, "70", s.Categories["food"].TotalAmount)
	assert.Equal(t, 2, s.Categories["food"].TransactionCount)

	assertDecimal(t, "30", s.TransactionTypes[TransactionTypeExpense].TotalAmount)
	assertDecimal(t, "100", s.TransactionTypes[TransactionTypeIncome].TotalAmount)
	assert.Equal(t, 1, s.TransactionTypes[TransactionTypeExpense].TransactionCount)
}

func TestSummarize_IgnoresOtherTypesInTotals(t *testing.T) {
	s := Summarize([]Transaction{
		newTx("1", "stocks", TransactionTypeInvestment, "-250", day(2024, 1, 1)),
		newTx("2", "savings", TransactionTypeTransfer, "75", day(2024, 1, 2)),
	})

	assertDecimal(t, "0", s.TotalIncome)
	assertDecimal(t, "0", s.TotalExpenses)
	assertDecimal(t, "250", s.TransactionTypes[TransactionTypeInvestment].TotalAmount)
	assertDecimal(t, "-250", s.Categories["stocks"].TotalAmount)
}

func TestSummarize_RoundsHalfAwayFromZero(t *testing.T) {
	s := Summarize([]Transaction{
		newTx("1", "salary", TransactionTypeIncome, "10.005", day(2024, 1, 1)),
		newTx("2", "food", TransactionTypeExpense, "-0.125", day(2024, 1, 2)),
	})

	assertDecimal(t, "10.01", s.TotalIncome)
	assertDecimal(t, "0.13", s.TotalExpenses)
	assertDecimal(t, "9.88", s.NetBalance)
}

func TestSummarize_DateBounds(t *testing.T) {
	s := Summarize(sampleRecords())

	require.NotNil(t, s.EarliestTransactionDate)
	require.NotNil(t, s.LatestTransactionDate)
	assert.Equal(t, day(2023, 12, 31), *s.EarliestTransactionDate)
	assert.Equal(t, day(2024, 3, 1), *s.LatestTransactionDate)
}

func TestSummarize_DoesNotModifyInput(t *testing.T) {
	records := sampleRecords()
	Summarize(records)
	assert.Equal(t, sampleRecords(), records)
}
