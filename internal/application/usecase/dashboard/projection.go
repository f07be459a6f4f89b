package dashboard

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/CauaPrates/organiza-ai-app/internal/domain/entity"
)

// View is everything the dashboard renders from a transaction set.
type View struct {
	// Summary always covers the whole set of the user, whatever the filters.
	Summary      entity.FinancialSummary
	Transactions []*entity.Transaction
	// Categories lists the distinct categories of the whole set, in first-seen order.
	Categories []string
}

// Project derives the summary and the filtered, sorted table view for userID.
// The input slice is not modified.
func Project(userID uuid.UUID, transactions []*entity.Transaction, q ViewQuery) View {
	return View{
		Summary:      entity.Summarize(userID, transactions),
		Transactions: Sort(Filter(userID, transactions, q), q.SortBy, q.SortOrder),
		Categories:   distinctCategories(userID, transactions),
	}
}

// Filter keeps the transactions of userID matching every filter of q.
// The result preserves input order.
func Filter(userID uuid.UUID, transactions []*entity.Transaction, q ViewQuery) []*entity.Transaction {
	search := strings.ToLower(q.Search)
	out := make([]*entity.Transaction, 0, len(transactions))

	for _, t := range transactions {
		if t == nil || t.UserID != userID {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Description), search) &&
			!strings.Contains(strings.ToLower(t.Category), search) {
			continue
		}
		if q.Type != "" && q.Type != TypeFilterAll && string(t.Type) != string(q.Type) {
			continue
		}
		if q.Category != "" && t.Category != q.Category {
			continue
		}
		out = append(out, t)
	}

	return out
}

// Sort returns a stably sorted copy. Equal keys keep their input order in both directions.
func Sort(transactions []*entity.Transaction, key SortKey, order SortOrder) []*entity.Transaction {
	out := make([]*entity.Transaction, len(transactions))
	copy(out, transactions)

	cmp := comparator(key)
	desc := order == SortDesc

	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return cmp(out[j], out[i]) < 0
		}
		return cmp(out[i], out[j]) < 0
	})

	return out
}

func comparator(key SortKey) func(a, b *entity.Transaction) int {
	switch key {
	case SortByValue:
		return func(a, b *entity.Transaction) int { return a.Value.Cmp(b.Value) }
	case SortByDescription:
		return func(a, b *entity.Transaction) int {
			if c := strings.Compare(strings.ToLower(a.Description), strings.ToLower(b.Description)); c != 0 {
				return c
			}
			return strings.Compare(a.Description, b.Description)
		}
	default:
		return func(a, b *entity.Transaction) int { return a.Date.Compare(b.Date) }
	}
}

func distinctCategories(userID uuid.UUID, transactions []*entity.Transaction) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, t := range transactions {
		if t == nil || t.UserID != userID {
			continue
		}
		if _, ok := seen[t.Category]; ok {
			continue
		}
		seen[t.Category] = struct{}{}
		out = append(out, t.Category)
	}
	return out
}
