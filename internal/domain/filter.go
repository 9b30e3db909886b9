// internal/domain/filter.go
package domain

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"fintrack/internal/util"
)

// Criteria narrows a transaction sequence. Zero-valued fields impose no constraint.
type Criteria struct {
	Category        string
	TransactionType TransactionType
	StartDate       *time.Time // inclusive
	EndDate         *time.Time // inclusive
}

// RawCriteria is the unparsed form of Criteria, as read from a query string.
type RawCriteria struct {
	Category        string
	TransactionType string
	StartDate       string
	EndDate         string
}

// ParseCriteria validates raw filter values. Every problem is reported together.
func ParseCriteria(raw RawCriteria) (Criteria, error) {
	var (
		c    Criteria
		errs []string
	)

	c.Category = strings.TrimSpace(raw.Category)

	if raw.TransactionType != "" {
		if t, ok := ParseTransactionType(raw.TransactionType); ok {
			c.TransactionType = t
		} else {
			errs = append(errs, MsgTransactionType)
		}
	}

	for _, bound := range []struct {
		name string
		raw  string
		dst  **time.Time
	}{
		{"start_date", raw.StartDate, &c.StartDate},
		{"end_date", raw.EndDate, &c.EndDate},
	} {
		if bound.raw == "" {
			continue
		}
		t, err := ParseTimestamp(bound.raw)
		if err != nil {
			errs = append(errs, bound.name+" must be in ISO format")
			continue
		}
		*bound.dst = &t
	}

	if len(errs) > 0 {
		return Criteria{}, util.NewValidationError("Invalid query parameters", errs...)
	}
	return c, nil
}

// IsEmpty reports whether c imposes no constraint at all.
func (c Criteria) IsEmpty() bool {
	return c.Category == "" && c.TransactionType == "" && c.StartDate == nil && c.EndDate == nil
}

// Matches reports whether t satisfies every supplied criterion.
func (c Criteria) Matches(t Transaction) bool {
	if c.Category != "" && !strings.EqualFold(t.Category, c.Category) {
		return false
	}
	if c.TransactionType != "" && !strings.EqualFold(string(t.TransactionType), string(c.TransactionType)) {
		return false
	}
	if c.StartDate != nil && t.Date.Before(*c.StartDate) {
		return false
	}
	if c.EndDate != nil && t.Date.After(*c.EndDate) {
		return false
	}
	return true
}

// Filter returns the records that match c, in input order. The input is not modified.
func Filter(records []Transaction, c Criteria) []Transaction {
	out := make([]Transaction, 0, len(records))
	for _, t := range records {
		if c.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// SortNewestFirst orders records by date descending.
// Equal dates fall back to created_at descending, then id ascending.
func SortNewestFirst(records []Transaction) {
	slices.SortStableFunc(records, func(a, b Transaction) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
