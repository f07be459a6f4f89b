package transaction

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/CauaPrates/organiza-ai-app/internal/application/adapter"
	domainerror "github.com/CauaPrates/organiza-ai-app/internal/domain/error"
)

// DeleteTransactionInput represents the input for transaction deletion.
type DeleteTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
}

// DeleteTransactionOutput represents the output of transaction deletion.
type DeleteTransactionOutput struct {
	Success bool
}

// DeleteTransactionUseCase handles transaction deletion logic.
type DeleteTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(transactionRepo adapter.TransactionRepository) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute removes the transaction permanently. The output is always non-nil;
// Success is false whenever an error is returned.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) (*DeleteTransactionOutput, error) {
	failed := &DeleteTransactionOutput{Success: false}

	transaction, err := uc.transactionRepo.FindByID(ctx, input.TransactionID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return failed, domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionNotFound,
				"transaction not found",
				domainerror.ErrTransactionNotFound,
			)
		}
		slog.Error("Failed to load transaction for delete",
			"transactionID", input.TransactionID,
			"error", err,
		)
		return failed, domainerror.NewRemoteTransactionError(
			domainerror.ErrCodeTransactionDeleteFailed,
			"failed to delete transaction",
			err,
		)
	}

	if transaction.UserID != input.UserID {
		return failed, domainerror.NewTransactionError(
			domainerror.ErrCodeNotAuthorizedTransaction,
			"not authorized to delete this transaction",
			domainerror.ErrNotAuthorizedToModifyTransaction,
		)
	}

	deleted, err := uc.transactionRepo.Delete(ctx, input.TransactionID)
	if err != nil {
		slog.Error("Failed to delete transaction",
			"transactionID", input.TransactionID,
			"error", err,
		)
		return failed, domainerror.NewRemoteTransactionError(
			domainerror.ErrCodeTransactionDeleteFailed,
			"failed to delete transaction",
			err,
		)
	}
	if !deleted {
		return failed, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"transaction not found",
			domainerror.ErrTransactionNotFound,
		)
	}

	return &DeleteTransactionOutput{Success: true}, nil
}
