package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FinancialSummary holds the dashboard totals of a user.
type FinancialSummary struct {
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	TotalNet     decimal.Decimal
	Count        int
}

// Summarize computes the totals over the transactions owned by userID.
// Transactions of other users are ignored.
func Summarize(userID uuid.UUID, transactions []*Transaction) FinancialSummary {
	summary := FinancialSummary{
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}

	for _, t := range transactions {
		if t == nil || t.UserID != userID {
			continue
		}
		switch t.Type {
		case TransactionTypeIncome:
			summary.TotalIncome = summary.TotalIncome.Add(t.Value)
		case TransactionTypeExpense:
			summary.TotalExpense = summary.TotalExpense.Add(t.Value)
		}
		summary.Count++
	}

	summary.TotalNet = summary.TotalIncome.Sub(summary.TotalExpense)
	return summary
}
