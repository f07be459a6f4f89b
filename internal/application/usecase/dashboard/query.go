// Package dashboard derives the dashboard summary and the transaction table view.
package dashboard

import (
	"fmt"
	"strings"

	"github.com/CauaPrates/organiza-ai-app/internal/domain/entity"
	domainerror "github.com/CauaPrates/organiza-ai-app/internal/domain/error"
)

// TypeFilter restricts the view to one transaction type.
type TypeFilter string

const (
	TypeFilterAll     TypeFilter = "all"
	TypeFilterIncome  TypeFilter = TypeFilter(entity.TransactionTypeIncome)
	TypeFilterExpense TypeFilter = TypeFilter(entity.TransactionTypeExpense)
)

// SortKey is the field the view is ordered by.
type SortKey string

const (
	SortByDate        SortKey = "date"
	SortByValue       SortKey = "value"
	SortByDescription SortKey = "description"
)

// SortOrder is the direction of the view ordering.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ViewQuery holds the user chosen filters and ordering of the transaction table.
type ViewQuery struct {
	Search    string
	Type      TypeFilter
	Category  string
	SortBy    SortKey
	SortOrder SortOrder
}

// DefaultViewQuery shows every transaction, newest first.
func DefaultViewQuery() ViewQuery {
	return ViewQuery{
		Type:      TypeFilterAll,
		SortBy:    SortByDate,
		SortOrder: SortDesc,
	}
}

// ParseViewQuery builds a query from raw request parameters. Empty values fall
// back to the defaults.
func ParseViewQuery(search, typeFilter, category, sortBy, sortOrder string) (ViewQuery, error) {
	q := DefaultViewQuery()
	q.Search = search
	q.Category = strings.TrimSpace(category)

	if typeFilter = strings.TrimSpace(typeFilter); typeFilter != "" && !strings.EqualFold(typeFilter, string(TypeFilterAll)) {
		t, ok := entity.ParseTransactionType(typeFilter)
		if !ok {
			return q, invalidQuery(fmt.Sprintf("type must be one of all, income, expense; got %q", typeFilter))
		}
		q.Type = TypeFilter(t)
	}

	switch key := SortKey(strings.ToLower(strings.TrimSpace(sortBy))); key {
	case "":
	case SortByDate, SortByValue, SortByDescription:
		q.SortBy = key
	default:
		return q, invalidQuery(fmt.Sprintf("sortBy must be one of date, value, description; got %q", sortBy))
	}

	switch order := SortOrder(strings.ToLower(strings.TrimSpace(sortOrder))); order {
	case "":
	case SortAsc, SortDesc:
		q.SortOrder = order
	default:
		return q, invalidQuery(fmt.Sprintf("sortOrder must be asc or desc; got %q", sortOrder))
	}

	return q, nil
}

func invalidQuery(message string) error {
	return domainerror.NewTransactionError(domainerror.ErrCodeInvalidViewQuery, message, nil)
}
