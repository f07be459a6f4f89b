package category

import (
	"context"
	"log/slog"
	"strings"

	"github.com/CauaPrates/organiza-ai-app/internal/application/adapter"
	"github.com/CauaPrates/organiza-ai-app/internal/domain/entity"
	domainerror "github.com/CauaPrates/organiza-ai-app/internal/domain/error"
)

// Suggestion sources.
const (
	SourceAI       = "ai"
	SourceKeyword  = "keyword"
	SourceFallback = "fallback"
)

// keywordCategories maps lowercase description fragments to a default category.
var keywordCategories = []struct {
	keyword  string
	category string
}{
	{"mercado", "Alimentação"},
	{"supermercado", "Alimentação"},
	{"restaurante", "Alimentação"},
	{"ifood", "Alimentação"},
	{"padaria", "Alimentação"},
	{"uber", "Transporte"},
	{"99", "Transporte"},
	{"gasolina", "Transporte"},
	{"combustível", "Transporte"},
	{"ônibus", "Transporte"},
	{"aluguel", "Moradia"},
	{"condomínio", "Moradia"},
	{"luz", "Moradia"},
	{"água", "Moradia"},
	{"internet", "Moradia"},
	{"farmácia", "Saúde"},
	{"médico", "Saúde"},
	{"consulta", "Saúde"},
	{"academia", "Saúde"},
	{"curso", "Educação"},
	{"faculdade", "Educação"},
	{"livro", "Educação"},
	{"cinema", "Entretenimento"},
	{"netflix", "Entretenimento"},
	{"spotify", "Entretenimento"},
	{"show", "Entretenimento"},
	{"loja", "Compras"},
	{"amazon", "Compras"},
	{"roupa", "Compras"},
	{"ações", "Investimentos"},
	{"tesouro", "Investimentos"},
	{"cdb", "Investimentos"},
	{"salário", "Salário"},
	{"salario", "Salário"},
	{"freela", "Freelance"},
	{"projeto", "Freelance"},
}

// SuggestCategoryInput represents the input for a category suggestion.
type SuggestCategoryInput struct {
	Description string
	Categories  []string // candidate categories; defaults when empty
}

// SuggestCategoryOutput represents the suggested category.
type SuggestCategoryOutput struct {
	Category string
	Source   string
}

// SuggestCategoryUseCase picks a category for a description.
type SuggestCategoryUseCase struct {
	suggester adapter.CategorySuggester
}

// NewSuggestCategoryUseCase creates a new SuggestCategoryUseCase instance. suggester may be nil.
func NewSuggestCategoryUseCase(suggester adapter.CategorySuggester) *SuggestCategoryUseCase {
	return &SuggestCategoryUseCase{
		suggester: suggester,
	}
}

// Execute asks the AI suggester first, then falls back to keyword matching and
// finally to the fallback category. Suggester failures never fail the request.
func (uc *SuggestCategoryUseCase) Execute(ctx context.Context, input SuggestCategoryInput) (*SuggestCategoryOutput, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeSuggestionDescriptionRequired,
			"description is required",
			domainerror.ErrSuggestionDescriptionRequired,
		)
	}

	candidates := mergeCategories(input.Categories)
	if len(candidates) == 0 {
		candidates = mergeCategories(entity.DefaultCategories)
	}

	if uc.suggester != nil && uc.suggester.IsAvailable() {
		suggested, err := uc.suggester.Suggest(ctx, description, candidates)
		if err != nil {
			slog.Warn("AI category suggestion failed, using keywords", "error", err)
		} else if match := findCategory(candidates, suggested); match != "" {
			return &SuggestCategoryOutput{Category: match, Source: SourceAI}, nil
		}
	}

	lower := strings.ToLower(description)
	for _, kc := range keywordCategories {
		if !strings.Contains(lower, kc.keyword) {
			continue
		}
		if match := findCategory(candidates, kc.category); match != "" {
			return &SuggestCategoryOutput{Category: match, Source: SourceKeyword}, nil
		}
	}

	return &SuggestCategoryOutput{Category: entity.FallbackCategory, Source: SourceFallback}, nil
}

// findCategory returns the candidate equal to name ignoring case, or "".
func findCategory(candidates []string, name string) string {
	name = strings.TrimSpace(name)
	for _, c := range candidates {
		if strings.EqualFold(c, name) {
			return c
		}
	}
	return ""
}
