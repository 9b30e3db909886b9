// internal/domain/transaction.go
package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// TransactionType defines the type of a financial transaction.
type TransactionType string

const (
	TransactionTypeIncome     TransactionType = "income"
	TransactionTypeExpense    TransactionType = "expense"
	TransactionTypeInvestment TransactionType = "investment"
	TransactionTypeTransfer   TransactionType = "transfer"
)

// TransactionTypes lists the accepted types in the order they are reported to callers.
var TransactionTypes = []TransactionType{
	TransactionTypeIncome,
	TransactionTypeExpense,
	TransactionTypeInvestment,
	TransactionTypeTransfer,
}

// ParseTransactionType matches s case-insensitively against the closed set of types.
func ParseTransactionType(s string) (TransactionType, bool) {
	t := TransactionType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range TransactionTypes {
		if t == known {
			return t, true
		}
	}
	return "", false
}

// Transaction represents a financial transaction record.
type Transaction struct {
	ID              string          `db:"id" json:"id"`                             // Generated UUID, never reassigned
	Amount          decimal.Decimal `db:"amount" json:"amount"`                     // Signed, never zero
	Category        string          `db:"category" json:"category"`                 // Lowercase, trimmed
	Description     string          `db:"description" json:"description"`           // Trimmed
	TransactionType TransactionType `db:"transaction_type" json:"transaction_type"` // income, expense, investment or transfer
	Date            time.Time       `db:"date" json:"date"`                         // When the transaction occurred
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`             // Timestamp of record creation
	Tags            []string        `db:"-" json:"tags"`                            // Stored by each repository in its own format
}

// TransactionPatch holds the normalized fields of a validated write candidate.
// Nil fields were not supplied and are left untouched by Apply.
type TransactionPatch struct {
	Amount          *decimal.Decimal
	Category        *string
	Description     *string
	TransactionType *TransactionType
	Date            *time.Time
	Tags            *[]string
}

// TimePrecision is the finest timestamp resolution kept on a transaction.
// It matches what PostgreSQL TIMESTAMPTZ stores.
const TimePrecision = time.Microsecond

// NewTransaction creates a new Transaction from a create patch.
// The date defaults to now when the patch carries none.
func NewTransaction(id string, patch TransactionPatch, now time.Time) *Transaction {
	now = now.UTC().Truncate(TimePrecision)
	t := &Transaction{
		ID:        id,
		Date:      now,
		CreatedAt: now,
		Tags:      []string{},
	}
	t.Apply(patch)
	return t
}

// Apply copies every supplied patch field onto t. ID and CreatedAt are never touched.
func (t *Transaction) Apply(patch TransactionPatch) {
	if patch.Amount != nil {
		t.Amount = *patch.Amount
	}
	if patch.Category != nil {
		t.Category = *patch.Category
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.TransactionType != nil {
		t.TransactionType = *patch.TransactionType
	}
	if patch.Date != nil {
		t.Date = patch.Date.UTC().Truncate(TimePrecision)
	}
	if patch.Tags != nil {
		t.Tags = append([]string{}, (*patch.Tags)...)
	}
}

// Clone returns a deep copy of t.
func (t Transaction) Clone() Transaction {
	c := t
	c.Tags = append([]string{}, t.Tags...)
	return c
}
