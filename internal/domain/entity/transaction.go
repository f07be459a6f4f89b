// Package entity defines the core business entities for the domain layer.
package entity

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// Localized aliases accepted on input.
const (
	transactionTypeAliasIncome  = "entrada"
	transactionTypeAliasExpense = "gasto"
)

// Value coercion failures. They are wrapped into domain validation errors by the use cases.
var (
	ErrValueNotNumeric = errors.New("value is not a number")
	ErrValueNegative   = errors.New("value must not be negative")
	ErrValueMissing    = errors.New("value is required")
	ErrValueTooLarge   = errors.New("value is too large")
	ErrValueTooPrecise = errors.New("value has more than 2 decimal places")
)

// Amount bounds, matching the decimal(15,2) column.
const (
	// ValueScale is the number of decimal places an amount may carry.
	ValueScale = 2
	// maxValueTextLength bounds the numeric text accepted before parsing.
	maxValueTextLength = 64
	// maxValueExponent bounds the exponent of a parsed amount so that later
	// rescaling and formatting stay cheap.
	maxValueExponent = 32
)

// MaxValue is the exclusive upper bound of an amount.
var MaxValue = decimal.New(1, 13)

// IsValid reports whether the type is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeExpense || t == TransactionTypeIncome
}

// ParseTransactionType parses a transaction type, accepting the localized aliases.
func ParseTransactionType(raw string) (TransactionType, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(TransactionTypeIncome), transactionTypeAliasIncome:
		return TransactionTypeIncome, true
	case string(TransactionTypeExpense), transactionTypeAliasExpense:
		return TransactionTypeExpense, true
	default:
		return "", false
	}
}

// Transaction represents a single income or expense entry owned by a user.
// Value is always a non-negative magnitude; the sign comes from Type.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Date        time.Time
	Description string
	Category    string
	Type        TransactionType
	Value       decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTransaction creates a new Transaction entity from a validated draft.
func NewTransaction(userID uuid.UUID, draft TransactionDraft) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Date:        draft.Date,
		Description: draft.Description,
		Category:    draft.Category,
		Type:        draft.Type,
		Value:       draft.Value,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Signed returns the value with the sign implied by the transaction type.
func (t *Transaction) Signed() decimal.Decimal {
	if t.Type == TransactionTypeExpense {
		return t.Value.Neg()
	}
	return t.Value
}

// Clone returns a copy of the transaction.
func (t *Transaction) Clone() *Transaction {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// TransactionDraft holds the caller supplied fields of a new transaction.
type TransactionDraft struct {
	Date        time.Time
	Description string
	Category    string
	Type        TransactionType
	Value       decimal.Decimal
}

// TransactionPatch holds the fields of a partial update. Nil fields are left untouched.
type TransactionPatch struct {
	Date        *time.Time
	Description *string
	Category    *string
	Type        *TransactionType
	Value       *decimal.Decimal
}

// IsEmpty reports whether the patch changes nothing.
func (p TransactionPatch) IsEmpty() bool {
	return p.Date == nil && p.Description == nil && p.Category == nil && p.Type == nil && p.Value == nil
}

// Apply copies the present fields of the patch onto the transaction.
// UpdatedAt always moves forward, even when the clock has not.
func (p TransactionPatch) Apply(t *Transaction, now time.Time) {
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.Value != nil {
		t.Value = *p.Value
	}

	if !now.After(t.UpdatedAt) {
		now = t.UpdatedAt.Add(time.Microsecond)
	}
	t.UpdatedAt = now
}

// CoerceValue converts a loosely typed amount (JSON number or numeric string)
// into a decimal. NaN, infinities, non-numeric input, negatives, amounts of
// MaxValue or more and amounts with more than ValueScale decimal places are
// rejected.
func CoerceValue(raw any) (decimal.Decimal, error) {
	switch v := raw.(type) {
	case nil:
		return decimal.Zero, ErrValueMissing
	case decimal.Decimal:
		return checkAmount(v)
	case float64:
		return coerceFloat(v)
	case float32:
		return coerceFloat(float64(v))
	case int:
		return checkAmount(decimal.NewFromInt(int64(v)))
	case int64:
		return checkAmount(decimal.NewFromInt(v))
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return decimal.Zero, ErrValueMissing
		}
		if len(s) > maxValueTextLength {
			return decimal.Zero, ErrValueTooLarge
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %q", ErrValueNotNumeric, v)
		}
		return checkAmount(d)
	default:
		return decimal.Zero, fmt.Errorf("%w: unsupported type %T", ErrValueNotNumeric, raw)
	}
}

func coerceFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, ErrValueNotNumeric
	}
	return checkAmount(decimal.NewFromFloat(f))
}

// checkAmount never formats d: the exponent is bounded first.
func checkAmount(d decimal.Decimal) (decimal.Decimal, error) {
	if d.IsNegative() {
		return decimal.Zero, ErrValueNegative
	}
	if e := d.Exponent(); e > maxValueExponent {
		return decimal.Zero, ErrValueTooLarge
	} else if e < -maxValueExponent {
		return decimal.Zero, ErrValueTooPrecise
	}
	if d.GreaterThanOrEqual(MaxValue) {
		return decimal.Zero, ErrValueTooLarge
	}
	if !d.Round(ValueScale).Equal(d) {
		return decimal.Zero, ErrValueTooPrecise
	}
	return d, nil
}
