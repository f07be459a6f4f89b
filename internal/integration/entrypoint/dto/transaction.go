package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/CauaPrates/organiza-ai-app/internal/domain/entity"
)

// DateLayout is the calendar date format used on the wire.
const DateLayout = "2006-01-02"

// CreateTransactionRequest represents the request body for transaction creation.
// Value accepts a JSON number or a numeric string.
type CreateTransactionRequest struct {
	Date        string          `json:"date" binding:"required"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Type        string          `json:"type" binding:"required"`
	Value       json.RawMessage `json:"value"`
}

// UpdateTransactionRequest represents the request body for transaction update.
// Absent fields are left untouched.
type UpdateTransactionRequest struct {
	Date        *string         `json:"date,omitempty"`
	Description *string         `json:"description,omitempty"`
	Category    *string         `json:"category,omitempty"`
	Type        *string         `json:"type,omitempty"`
	Value       json.RawMessage `json:"value,omitempty"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Type        string    `json:"type"`
	Value       string    `json:"value"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ListTransactionsResponse represents the transaction list.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// DeleteTransactionResponse reports the outcome of a delete.
type DeleteTransactionResponse struct {
	Success bool `json:"success"`
}

// ToTransactionResponse converts a domain Transaction to its DTO.
func ToTransactionResponse(t *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID.String(),
		Date:        t.Date.Format(DateLayout),
		Description: t.Description,
		Category:    t.Category,
		Type:        string(t.Type),
		Value:       t.Value.StringFixed(2),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// ToTransactionResponses converts a list, never returning nil.
func ToTransactionResponses(items []*entity.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(items))
	for _, t := range items {
		out = append(out, ToTransactionResponse(t))
	}
	return out
}

// RawValue turns the raw JSON value into the loose form accepted by the use
// cases: nil when absent or null, otherwise the unquoted string or number text.
func RawValue(raw json.RawMessage) any {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(raw string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, raw, time.UTC)
}
