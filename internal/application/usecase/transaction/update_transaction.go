package transaction

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/CauaPrates/organiza-ai-app/internal/application/adapter"
	"github.com/CauaPrates/organiza-ai-app/internal/domain/entity"
	domainerror "github.com/CauaPrates/organiza-ai-app/internal/domain/error"
)

// UpdateTransactionInput represents the input for transaction update.
// Nil fields are left untouched.
type UpdateTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
	Date          *time.Time
	Description   *string
	Category      *string
	Type          *string
	Value         any
}

// UpdateTransactionOutput represents the output of transaction update.
type UpdateTransactionOutput struct {
	Transaction *entity.Transaction
}

// UpdateTransactionUseCase handles transaction update logic.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	now             Clock
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(transactionRepo adapter.TransactionRepository) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		now:             utcNow,
	}
}

// Execute applies the present fields and refreshes UpdatedAt.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	patch, err := buildPatch(input)
	if err != nil {
		return nil, err
	}

	transaction, err := uc.transactionRepo.FindByID(ctx, input.TransactionID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionNotFound,
				"transaction not found",
				domainerror.ErrTransactionNotFound,
			)
		}
		slog.Error("Failed to load transaction for update",
			"transactionID", input.TransactionID,
			"error", err,
		)
		return nil, domainerror.NewRemoteTransactionError(
			domainerror.ErrCodeTransactionUpdateFailed,
			"failed to update transaction",
			err,
		)
	}

	if transaction.UserID != input.UserID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeNotAuthorizedTransaction,
			"not authorized to update this transaction",
			domainerror.ErrNotAuthorizedToModifyTransaction,
		)
	}

	patch.Apply(transaction, uc.now())

	if err := uc.transactionRepo.Update(ctx, transaction); err != nil {
		slog.Error("Failed to update transaction",
			"transactionID", input.TransactionID,
			"error", err,
		)
		return nil, domainerror.NewRemoteTransactionError(
			domainerror.ErrCodeTransactionUpdateFailed,
			"failed to update transaction",
			err,
		)
	}

	return &UpdateTransactionOutput{Transaction: transaction}, nil
}

func buildPatch(input UpdateTransactionInput) (entity.TransactionPatch, error) {
	var patch entity.TransactionPatch

	if input.Type != nil {
		txType, err := parseType(*input.Type)
		if err != nil {
			return patch, err
		}
		patch.Type = &txType
	}

	if input.Value != nil {
		value, err := parseValue(input.Value)
		if err != nil {
			return patch, err
		}
		patch.Value = &value
	}

	if input.Date != nil {
		if err := validateDate(*input.Date); err != nil {
			return patch, err
		}
		date := *input.Date
		patch.Date = &date
	}

	if input.Description != nil {
		description, err := normalizeDescription(*input.Description)
		if err != nil {
			return patch, err
		}
		patch.Description = &description
	}

	if input.Category != nil {
		category, err := normalizeCategory(*input.Category)
		if err != nil {
			return patch, err
		}
		patch.Category = &category
	}

	if patch.IsEmpty() {
		return patch, domainerror.NewTransactionError(
			domainerror.ErrCodeEmptyTransactionPatch,
			"at least one field must be provided",
			domainerror.ErrEmptyTransactionPatch,
		)
	}

	return patch, nil
}
