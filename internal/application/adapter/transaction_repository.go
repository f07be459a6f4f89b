// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/CauaPrates/organiza-ai-app/internal/domain/entity"
)

// TransactionRepository is the remote persistence collaborator for transactions.
// Every call is scoped by the caller; rows of other users are never returned.
type TransactionRepository interface {
	// Create stores a new transaction. ID and timestamps are already set.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByUser retrieves all transactions of a user ordered by date descending.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error)

	// Update overwrites the mutable fields of an existing transaction.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete removes a transaction permanently. It reports whether a row was removed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// DistinctCategories returns the categories used by a user's transactions.
	DistinctCategories(ctx context.Context, userID uuid.UUID) ([]string, error)
}
