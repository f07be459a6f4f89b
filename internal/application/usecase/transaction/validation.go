// Package transaction contains the use cases of the transaction store adapter.
package transaction

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/CauaPrates/organiza-ai-app/internal/domain/entity"
	domainerror "github.com/CauaPrates/organiza-ai-app/internal/domain/error"
)

const (
	// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
	MaxDescriptionLength = 255
	// MaxCategoryLength is the maximum allowed length for category names.
	MaxCategoryLength = 100
)

// Clock returns the current time. Tests replace it to control UpdatedAt.
type Clock func() time.Time

func utcNow() time.Time { return time.Now().UTC() }

func parseType(raw string) (entity.TransactionType, error) {
	t, ok := entity.ParseTransactionType(raw)
	if !ok {
		return "", domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'income' or 'expense'",
			domainerror.ErrInvalidTransactionType,
		)
	}
	return t, nil
}

func parseValue(raw any) (decimal.Decimal, error) {
	value, err := entity.CoerceValue(raw)
	if err != nil {
		return decimal.Zero, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionValue,
			fmt.Sprintf("value must be a non-negative number below %s with at most %d decimal places", entity.MaxValue, entity.ValueScale),
			fmt.Errorf("%w: %w", domainerror.ErrInvalidTransactionValue, err),
		)
	}
	return value, nil
}

func validateDate(date time.Time) error {
	if date.IsZero() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"date is required",
			domainerror.ErrInvalidTransactionDate,
		)
	}
	return nil
}

func normalizeDescription(description string) (string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", domainerror.NewTransactionError(
			domainerror.ErrCodeMissingTransactionFields,
			"description is required",
			nil,
		)
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return "", domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}
	return description, nil
}

// normalizeCategory trims the category; an empty one becomes the fallback category.
func normalizeCategory(category string) (string, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return entity.FallbackCategory, nil
	}
	if utf8.RuneCountInString(category) > MaxCategoryLength {
		return "", domainerror.NewTransactionError(
			domainerror.ErrCodeCategoryTooLong,
			fmt.Sprintf("category must not exceed %d characters", MaxCategoryLength),
			domainerror.ErrCategoryTooLong,
		)
	}
	return category, nil
}
