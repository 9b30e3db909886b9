// internal/domain/summary.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of decimal places the monetary totals are rounded to.
const MoneyPlaces = 2

// Breakdown aggregates the transactions sharing a category or a type.
type Breakdown struct {
	TotalAmount      decimal.Decimal `json:"total_amount"`
	TransactionCount int             `json:"transaction_count"`
}

// Summary is the aggregated view over a set of transactions.
// The date bounds are nil when the set is empty.
type Summary struct {
	TotalTransactions       int                           `json:"total_transactions"`
	TotalIncome             decimal.Decimal               `json:"total_income"`
	TotalExpenses           decimal.Decimal               `json:"total_expenses"`
	NetBalance              decimal.Decimal               `json:"net_balance"`
	Categories              map[string]Breakdown          `json:"categories"`
	TransactionTypes        map[TransactionType]Breakdown `json:"transaction_types"`
	LatestTransactionDate   *time.Time                    `json:"latest_transaction_date,omitempty"`
	EarliestTransactionDate *time.Time                    `json:"earliest_transaction_date,omitempty"`
}

// Summarize computes totals and breakdowns in a single pass over records.
//
// Income is summed signed; expenses are summed as absolute values.
// Category totals are signed sums across every type, while type totals are
// absolute sums. Monetary totals are rounded half away from zero.
func Summarize(records []Transaction) Summary {
	s := Summary{
		TotalTransactions: len(records),
		TotalIncome:       decimal.Zero,
		TotalExpenses:     decimal.Zero,
		NetBalance:        decimal.Zero,
		Categories:        make(map[string]Breakdown),
		TransactionTypes:  make(map[TransactionType]Breakdown),
	}
	if len(records) == 0 {
		return s
	}

	income, expenses := decimal.Zero, decimal.Zero
	earliest, latest := records[0].Date, records[0].Date

	for _, t := range records {
		switch t.TransactionType {
		case TransactionTypeIncome:
			income = income.Add(t.Amount)
		case TransactionTypeExpense:
			expenses = expenses.Add(t.Amount.Abs())
		}

		cat := s.Categories[t.Category]
		cat.TotalAmount = cat.TotalAmount.Add(t.Amount)
		cat.TransactionCount++
		s.Categories[t.Category] = cat

		typ := s.TransactionTypes[t.TransactionType]
		typ.TotalAmount = typ.TotalAmount.Add(t.Amount.Abs())
		typ.TransactionCount++
		s.TransactionTypes[t.TransactionType] = typ

		if t.Date.Before(earliest) {
			earliest = t.Date
		}
		if t.Date.After(latest) {
			latest = t.Date
		}
	}

	s.TotalIncome = income.Round(MoneyPlaces)
	s.TotalExpenses = expenses.Round(MoneyPlaces)
	s.NetBalance = income.Sub(expenses).Round(MoneyPlaces)
	s.LatestTransactionDate = &latest
	s.EarliestTransactionDate = &earliest
	return s
}
