// Package category contains category-related use cases.
package category

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/CauaPrates/organiza-ai-app/internal/application/adapter"
	"github.com/CauaPrates/organiza-ai-app/internal/domain/entity"
	domainerror "github.com/CauaPrates/organiza-ai-app/internal/domain/error"
)

// ListCategoriesInput represents the input for listing categories.
type ListCategoriesInput struct {
	UserID uuid.UUID
}

// ListCategoriesOutput represents the output of listing categories.
type ListCategoriesOutput struct {
	Categories []string
}

// ListCategoriesUseCase merges the built-in categories with the ones the user already used.
type ListCategoriesUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(transactionRepo adapter.TransactionRepository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute returns the categories sorted alphabetically with case-insensitive duplicates removed.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	used, err := uc.transactionRepo.DistinctCategories(ctx, input.UserID)
	if err != nil {
		slog.Error("Failed to list user categories", "userID", input.UserID, "error", err)
		return &ListCategoriesOutput{Categories: mergeCategories(entity.DefaultCategories, nil)},
			domainerror.NewCategoryError(domainerror.ErrCodeCategoryListFailed, "failed to list categories", err)
	}

	return &ListCategoriesOutput{Categories: mergeCategories(entity.DefaultCategories, used)}, nil
}

func mergeCategories(lists ...[]string) []string {
	seen := make(map[string]bool)
	merged := make([]string, 0, len(entity.DefaultCategories))
	for _, list := range lists {
		for _, name := range list {
			name = strings.TrimSpace(name)
			key := strings.ToLower(name)
			if name == "" || seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, name)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return strings.ToLower(merged[i]) < strings.ToLower(merged[j])
	})
	return merged
}
