package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CauaPrates/organiza-ai-app/internal/application/usecase/category"
	domainerror "github.com/CauaPrates/organiza-ai-app/internal/domain/error"
	"github.com/CauaPrates/organiza-ai-app/internal/integration/entrypoint/dto"
)

// CategoryController handles category endpoints.
type CategoryController struct {
	listUseCase    *category.ListCategoriesUseCase
	suggestUseCase *category.SuggestCategoryUseCase
}

// NewCategoryController creates a new category controller instance.
func NewCategoryController(
	listUseCase *category.ListCategoriesUseCase,
	suggestUseCase *category.SuggestCategoryUseCase,
) *CategoryController {
	return &CategoryController{
		listUseCase:    listUseCase,
		suggestUseCase: suggestUseCase,
	}
}

// List handles GET /categories requests.
func (c *CategoryController) List(ctx *gin.Context) {
	s, ok := requireSession(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), category.ListCategoriesInput{
		UserID: s.UserID(),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CategoryListResponse{Categories: output.Categories})
}

// Suggest handles POST /categories/suggest requests. Candidates are the
// categories the user can currently pick from.
func (c *CategoryController) Suggest(ctx *gin.Context) {
	s, ok := requireSession(ctx)
	if !ok {
		return
	}

	var req dto.SuggestCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, string(domainerror.ErrCodeSuggestionDescriptionRequired), "Invalid request body")
		return
	}

	var candidates []string
	if listed, err := c.listUseCase.Execute(ctx.Request.Context(), category.ListCategoriesInput{UserID: s.UserID()}); err == nil {
		candidates = listed.Categories
	}

	output, err := c.suggestUseCase.Execute(ctx.Request.Context(), category.SuggestCategoryInput{
		Description: req.Description,
		Categories:  candidates,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuggestCategoryResponse{
		Category: output.Category,
		Source:   output.Source,
	})
}
