package dto

// CategoryListResponse represents the categories offered to the user.
type CategoryListResponse struct {
	Categories []string `json:"categories"`
}

// SuggestCategoryRequest represents the request body for a category suggestion.
type SuggestCategoryRequest struct {
	Description string `json:"description"`
}

// SuggestCategoryResponse represents the suggested category.
type SuggestCategoryResponse struct {
	Category string `json:"category"`
	Source   string `json:"source"`
}
