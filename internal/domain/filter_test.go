// internal/domain/filter_test.go
package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/util"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTx(id, category string, typ TransactionType, amount string, date time.Time) Transaction {
	return Transaction{
		ID:              id,
		Amount:          decimal.RequireFromString(amount),
		Category:        category,
		TransactionType: typ,
		Date:            date,
		CreatedAt:       date,
		Tags:            []string{},
	}
}

func ids(records []Transaction) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func sampleRecords() []Transaction {
	return []Transaction{
		newTx("1", "food", TransactionTypeExpense, "-20", day(2023, 12, 31)),
		newTx("2", "food", TransactionTypeExpense, "-35", day(2024, 1, 1)),
		newTx("3", "salary", TransactionTypeIncome, "3000", day(2024, 1, 5)),
		newTx("4", "food", TransactionTypeExpense, "-12", day(2024, 2, 10)),
		newTx("5", "stocks", TransactionTypeInvestment, "500", day(2024, 3, 1)),
	}
}

func TestFilter_ComposesCriteria(t *testing.T) {
	start := day(2024, 1, 1)
	got := Filter(sampleRecords(), Criteria{Category: "food", StartDate: &start})
	assert.Equal(t, []string{"2", "4"}, ids(got))
}

func TestFilter_BoundsAreInclusive(t *testing.T) {
	start, end := day(2024, 1, 1), day(2024, 2, 10)
	got := Filter(sampleRecords(), Criteria{StartDate: &start, EndDate: &end})
	assert.Equal(t, []string{"2", "3", "4"}, ids(got))
}

func TestFilter_IsCaseInsensitive(t *testing.T) {
	got := Filter(sampleRecords(), Criteria{TransactionType: "Income"})
	assert.Equal(t, []string{"3"}, ids(got))

	got = Filter(sampleRecords(), Criteria{Category: "FOOD"})
	assert.Equal(t, []string{"1", "2", "4"}, ids(got))
}

func TestFilter_NoMatchIsEmpty(t *testing.T) {
	got := Filter(sampleRecords(), Criteria{Category: "travel"})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilter_EmptyCriteriaKeepsAll(t *testing.T) {
	records := sampleRecords()
	assert.True(t, Criteria{}.IsEmpty())
	assert.Equal(t, ids(records), ids(Filter(records, Criteria{})))
}

func TestSortNewestFirst(t *testing.T) {
	records := sampleRecords()
	same := day(2024, 3, 1)
	later := newTx("0", "misc", TransactionTypeTransfer, "10", same)
	later.CreatedAt = same.Add(time.Hour)
	tie := newTx("6", "misc", TransactionTypeTransfer, "10", same)
	records = append(records, tie, later)

	SortNewestFirst(records)
	assert.Equal(t, []string{"0", "5", "6", "4", "3", "2", "1"}, ids(records))
}

func TestParseCriteria(t *testing.T) {
	c, err := ParseCriteria(RawCriteria{
		Category:        " Food ",
		TransactionType: "EXPENSE",
		StartDate:       "2024-01-01",
		EndDate:         "2024-01-31T23:59:59",
	})
	require.NoError(t, err)
	assert.Equal(t, "Food", c.Category)
	assert.Equal(t, TransactionTypeExpense, c.TransactionType)
	assert.Equal(t, day(2024, 1, 1), *c.StartDate)
	assert.Equal(t, time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC), *c.EndDate)

	c, err = ParseCriteria(RawCriteria{})
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestParseCriteria_ReportsEveryProblem(t *testing.T) {
	_, err := ParseCriteria(RawCriteria{
		TransactionType: "gift",
		StartDate:       "01/01/2024",
		EndDate:         "soon",
	})
	require.Error(t, err)

	ve, ok := util.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid query parameters", ve.Message)
	assert.Equal(t, []string{
		MsgTransactionType,
		"start_date must be in ISO format",
		"end_date must be in ISO format",
	}, ve.Details)
}
