package transaction

import (
	"context"

	"github.com/google/uuid"

	"github.com/CauaPrates/organiza-ai-app/internal/application/adapter"
	"github.com/CauaPrates/organiza-ai-app/internal/domain/entity"
)

// Store exposes the four transaction use cases as one stateless adapter.
type Store struct {
	list   *ListTransactionsUseCase
	create *CreateTransactionUseCase
	update *UpdateTransactionUseCase
	delete *DeleteTransactionUseCase
}

// NewStore creates a Store backed by the given repository.
func NewStore(transactionRepo adapter.TransactionRepository) *Store {
	return &Store{
		list:   NewListTransactionsUseCase(transactionRepo),
		create: NewCreateTransactionUseCase(transactionRepo),
		update: NewUpdateTransactionUseCase(transactionRepo),
		delete: NewDeleteTransactionUseCase(transactionRepo),
	}
}

// List returns the user's transactions; on failure the slice is empty, never nil.
func (s *Store) List(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	out, err := s.list.Execute(ctx, ListTransactionsInput{UserID: userID})
	return out.Transactions, err
}

// Add stores a new transaction.
func (s *Store) Add(ctx context.Context, input CreateTransactionInput) (*entity.Transaction, error) {
	out, err := s.create.Execute(ctx, input)
	if err != nil {
		return nil, err
	}
	return out.Transaction, nil
}

// Update applies a partial update.
func (s *Store) Update(ctx context.Context, input UpdateTransactionInput) (*entity.Transaction, error) {
	out, err := s.update.Execute(ctx, input)
	if err != nil {
		return nil, err
	}
	return out.Transaction, nil
}

// Delete removes a transaction and reports whether it succeeded.
func (s *Store) Delete(ctx context.Context, input DeleteTransactionInput) (bool, error) {
	out, err := s.delete.Execute(ctx, input)
	return out.Success, err
}
