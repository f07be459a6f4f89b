package transaction

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/CauaPrates/organiza-ai-app/internal/application/adapter"
	"github.com/CauaPrates/organiza-ai-app/internal/domain/entity"
	domainerror "github.com/CauaPrates/organiza-ai-app/internal/domain/error"
)

// CreateTransactionInput represents the input for transaction creation.
// Type accepts "income"/"expense" and the localized "entrada"/"gasto";
// Value accepts a JSON number or a numeric string.
type CreateTransactionInput struct {
	UserID      uuid.UUID
	Date        time.Time
	Description string
	Category    string
	Type        string
	Value       any
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *entity.Transaction
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(transactionRepo adapter.TransactionRepository) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute validates the input and stores the new transaction. Nothing reaches
// the store when validation fails.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	draft, err := buildDraft(input)
	if err != nil {
		return nil, err
	}

	transaction := entity.NewTransaction(input.UserID, draft)

	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		slog.Error("Failed to create transaction",
			"userID", input.UserID,
			"error", err,
		)
		return nil, domainerror.NewRemoteTransactionError(
			domainerror.ErrCodeTransactionCreateFailed,
			"failed to create transaction",
			err,
		)
	}

	return &CreateTransactionOutput{Transaction: transaction}, nil
}

func buildDraft(input CreateTransactionInput) (entity.TransactionDraft, error) {
	txType, err := parseType(input.Type)
	if err != nil {
		return entity.TransactionDraft{}, err
	}

	value, err := parseValue(input.Value)
	if err != nil {
		return entity.TransactionDraft{}, err
	}

	if err := validateDate(input.Date); err != nil {
		return entity.TransactionDraft{}, err
	}

	description, err := normalizeDescription(input.Description)
	if err != nil {
		return entity.TransactionDraft{}, err
	}

	category, err := normalizeCategory(input.Category)
	if err != nil {
		return entity.TransactionDraft{}, err
	}

	return entity.TransactionDraft{
		Date:        input.Date,
		Description: description,
		Category:    category,
		Type:        txType,
		Value:       value,
	}, nil
}
