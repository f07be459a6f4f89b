package adapter

import "context"

// CategorySuggester picks the best category for a transaction description.
type CategorySuggester interface {
	// Suggest returns one of categories, or an empty string when none fits.
	Suggest(ctx context.Context, description string, categories []string) (string, error)

	// IsAvailable checks if the service is properly configured.
	IsAvailable() bool
}
