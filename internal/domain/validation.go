// internal/domain/validation.go
package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/util"
)

// Candidate is a decoded JSON object proposed for creation or update.
// Values keep their decoded dynamic types so that type problems can be reported.
type Candidate map[string]any

// Mode selects which checks the validation gate applies.
type Mode int

const (
	// ModeCreate requires every required field to be present.
	ModeCreate Mode = iota
	// ModeUpdate checks only the fields that were supplied.
	ModeUpdate
)

// Field names as they appear on the wire.
const (
	FieldAmount          = "amount"
	FieldCategory        = "category"
	FieldDescription     = "description"
	FieldTransactionType = "transaction_type"
	FieldDate            = "date"
	FieldTags            = "tags"
)

var requiredFields = []string{FieldAmount, FieldCategory, FieldDescription, FieldTransactionType}

// Error texts reported by Validate.
const (
	MsgNoData             = "No JSON data provided"
	MsgNoDataDetail       = "Request must contain valid JSON data"
	MsgInvalidTransaction = "Invalid transaction data"
	MsgAmountNotNumber    = "Amount must be a valid number"
	MsgAmountZero         = "Amount cannot be zero"
	MsgTagsNotList        = "Tags must be a list"
	MsgTagsNotStrings     = "All tags must be strings"
	MsgTagsEmpty          = "Tags cannot be empty strings"
	MsgDateFormat         = "Date must be in ISO format (YYYY-MM-DDTHH:MM:SS)"
)

// MsgTransactionType names the permitted transaction types.
var MsgTransactionType = "Transaction type must be one of: " + joinTypes()

func joinTypes() string {
	names := make([]string, len(TransactionTypes))
	for i, t := range TransactionTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// Validate runs every applicable check against c and reports all failures together
// as a *util.ValidationError. On success it returns the normalized patch.
// It has no side effects.
func Validate(c Candidate, mode Mode) (TransactionPatch, error) {
	if len(c) == 0 {
		return TransactionPatch{}, util.NewValidationError(MsgNoData, MsgNoDataDetail)
	}

	var (
		errs  []string
		patch TransactionPatch
	)

	for _, field := range requiredFields {
		v, present := c[field]
		if !present || v == nil {
			if mode == ModeCreate || present {
				errs = append(errs, fmt.Sprintf("'%s' is required", field))
			}
			continue
		}
		if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
			errs = append(errs, fmt.Sprintf("'%s' cannot be empty", field))
		}
	}

	if v, ok := c[FieldAmount]; ok && v != nil {
		amount, ok := toDecimal(v)
		switch {
		case !ok:
			errs = append(errs, MsgAmountNotNumber)
		case amount.IsZero():
			errs = append(errs, MsgAmountZero)
		case !amountInRange(amount):
			errs = append(errs, MsgAmountNotNumber)
		default:
			patch.Amount = &amount
		}
	}

	if v, ok := c[FieldCategory]; ok && v != nil {
		if s, ok := v.(string); !ok {
			errs = append(errs, fmt.Sprintf("'%s' must be a string", FieldCategory))
		} else if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			patch.Category = &s
		}
	}

	if v, ok := c[FieldDescription]; ok && v != nil {
		if s, ok := v.(string); !ok {
			errs = append(errs, fmt.Sprintf("'%s' must be a string", FieldDescription))
		} else if s = strings.TrimSpace(s); s != "" {
			patch.Description = &s
		}
	}

	if v, ok := c[FieldTransactionType]; ok && v != nil {
		s, _ := v.(string)
		if t, ok := ParseTransactionType(s); ok {
			patch.TransactionType = &t
		} else {
			errs = append(errs, MsgTransactionType)
		}
	}

	if v, ok := c[FieldTags]; ok && v != nil {
		tags, msg := toTags(v)
		if msg != "" {
			errs = append(errs, msg)
		} else {
			patch.Tags = &tags
		}
	}

	if v, ok := c[FieldDate]; ok && v != nil {
		s, _ := v.(string)
		if d, err := ParseTimestamp(s); err != nil {
			errs = append(errs, MsgDateFormat)
		} else {
			patch.Date = &d
		}
	}

	if len(errs) > 0 {
		return TransactionPatch{}, util.NewValidationError(MsgInvalidTransaction, errs...)
	}
	return patch, nil
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		return d, err == nil
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(n), true
	case float32:
		return toDecimal(float64(n))
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	case decimal.Decimal:
		return n, true
	default:
		return decimal.Zero, false
	}
}

// Bounds on the magnitude and precision of an accepted amount.
const (
	maxAmountIntegerDigits  = 18
	maxAmountFractionDigits = 18
)

// amountInRange reports whether d fits the amount bounds. It never expands the
// exponent, so values such as 1e2000000 are rejected without materializing them.
func amountInRange(d decimal.Decimal) bool {
	digits := int64(d.NumDigits())
	exp := int64(d.Exponent())

	if digits+exp > maxAmountIntegerDigits {
		return false
	}
	if exp >= -maxAmountFractionDigits {
		return true
	}
	if digits+exp < -maxAmountFractionDigits {
		return false
	}
	// Trailing zeros past the limit are fine; the rescale is bounded by digits.
	return d.Equal(d.Truncate(maxAmountFractionDigits))
}

func toTags(v any) ([]string, string) {
	var items []any
	switch list := v.(type) {
	case []any:
		items = list
	case []string:
		items = make([]any, len(list))
		for i, s := range list {
			items[i] = s
		}
	default:
		return nil, MsgTagsNotList
	}

	tags := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, MsgTagsNotStrings
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, MsgTagsEmpty
		}
		tags = append(tags, s)
	}
	return tags, ""
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999-0700",
	"2006-01-02 15:04:05.999999999-0700",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04-0700",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02T15",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601 date or date-time. Values without an offset are taken as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp: %w", util.ErrMalformedInput)
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("timestamp %q: %w", s, util.ErrMalformedInput)
}
