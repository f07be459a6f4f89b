package dto

import (
	"github.com/CauaPrates/organiza-ai-app/internal/application/usecase/dashboard"
	"github.com/CauaPrates/organiza-ai-app/internal/domain/entity"
)

// SummaryResponse represents the dashboard totals.
type SummaryResponse struct {
	TotalIncome  string `json:"total_income"`
	TotalExpense string `json:"total_expense"`
	TotalNet     string `json:"total_net"`
	Count        int    `json:"count"`
}

// DashboardQueryResponse echoes the effective view query.
type DashboardQueryResponse struct {
	Search    string `json:"search"`
	Type      string `json:"type"`
	Category  string `json:"category"`
	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order"`
}

// DashboardResponse represents the full dashboard view.
type DashboardResponse struct {
	Summary      SummaryResponse        `json:"summary"`
	Transactions []TransactionResponse  `json:"transactions"`
	Categories   []string               `json:"categories"`
	Query        DashboardQueryResponse `json:"query"`
}

// ToSummaryResponse converts the domain summary to its DTO.
func ToSummaryResponse(s entity.FinancialSummary) SummaryResponse {
	return SummaryResponse{
		TotalIncome:  s.TotalIncome.StringFixed(2),
		TotalExpense: s.TotalExpense.StringFixed(2),
		TotalNet:     s.TotalNet.StringFixed(2),
		Count:        s.Count,
	}
}

// ToDashboardResponse converts a projected view to its DTO.
func ToDashboardResponse(v dashboard.View, q dashboard.ViewQuery) DashboardResponse {
	categories := v.Categories
	if categories == nil {
		categories = []string{}
	}
	return DashboardResponse{
		Summary:      ToSummaryResponse(v.Summary),
		Transactions: ToTransactionResponses(v.Transactions),
		Categories:   categories,
		Query: DashboardQueryResponse{
			Search:    q.Search,
			Type:      string(q.Type),
			Category:  q.Category,
			SortBy:    string(q.SortBy),
			SortOrder: string(q.SortOrder),
		},
	}
}
