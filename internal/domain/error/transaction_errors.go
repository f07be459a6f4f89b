// Package error defines domain-specific errors for the Organiza application.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found in the system.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrNotAuthorizedToModifyTransaction is returned when user is not authorized to modify a transaction.
	ErrNotAuthorizedToModifyTransaction = errors.New("not authorized to modify transaction")

	// ErrInvalidTransactionType is returned when the transaction type is invalid.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidTransactionDate is returned when the transaction date is invalid.
	ErrInvalidTransactionDate = errors.New("invalid transaction date")

	// ErrInvalidTransactionValue is returned when the value is not a non-negative number.
	ErrInvalidTransactionValue = errors.New("invalid transaction value")

	// ErrDescriptionTooLong is returned when the transaction description exceeds the maximum length.
	ErrDescriptionTooLong = errors.New("description too long")

	// ErrCategoryTooLong is returned when the category name exceeds the maximum length.
	ErrCategoryTooLong = errors.New("category too long")

	// ErrEmptyTransactionPatch is returned when an update carries no field.
	ErrEmptyTransactionPatch = errors.New("no fields to update")

	// ErrTransactionStoreUnavailable is returned when the remote store rejects or fails a call.
	ErrTransactionStoreUnavailable = errors.New("transaction store unavailable")

	// ErrMutationInFlight is returned when a mutation of the same target is already running.
	ErrMutationInFlight = errors.New("another change to this item is still in progress")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionType   TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionDate   TransactionErrorCode = "TXN-010002"
	ErrCodeInvalidTransactionValue  TransactionErrorCode = "TXN-010003"
	ErrCodeDescriptionTooLong       TransactionErrorCode = "TXN-010004"
	ErrCodeCategoryTooLong          TransactionErrorCode = "TXN-010005"
	ErrCodeMissingTransactionFields TransactionErrorCode = "TXN-010006"
	ErrCodeEmptyTransactionPatch    TransactionErrorCode = "TXN-010007"
	ErrCodeInvalidViewQuery         TransactionErrorCode = "TXN-010008"

	// Remote store errors (02XXXX)
	ErrCodeTransactionFetchFailed  TransactionErrorCode = "TXN-020001"
	ErrCodeTransactionCreateFailed TransactionErrorCode = "TXN-020002"
	ErrCodeTransactionUpdateFailed TransactionErrorCode = "TXN-020003"
	ErrCodeTransactionDeleteFailed TransactionErrorCode = "TXN-020004"

	// Access errors (03XXXX)
	ErrCodeTransactionNotFound      TransactionErrorCode = "TXN-030001"
	ErrCodeNotAuthorizedTransaction TransactionErrorCode = "TXN-030002"
	ErrCodeTransactionInFlight      TransactionErrorCode = "TXN-030003"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// ErrorKind classifies the error by its code.
func (e *TransactionError) ErrorKind() Kind {
	switch e.Code {
	case ErrCodeTransactionFetchFailed, ErrCodeTransactionCreateFailed,
		ErrCodeTransactionUpdateFailed, ErrCodeTransactionDeleteFailed:
		return KindRemote
	case ErrCodeTransactionNotFound:
		return KindNotFound
	case ErrCodeNotAuthorizedTransaction:
		return KindForbidden
	case ErrCodeTransactionInFlight:
		return KindConflict
	default:
		return KindValidation
	}
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewFetchError wraps a failed read of the transaction set.
func NewFetchError(err error) *TransactionError {
	return NewTransactionError(ErrCodeTransactionFetchFailed, "failed to fetch transactions", joinStoreError(err))
}

func joinStoreError(err error) error {
	if err == nil {
		return ErrTransactionStoreUnavailable
	}
	return errors.Join(ErrTransactionStoreUnavailable, err)
}

// NewRemoteTransactionError wraps a failed mutation of the transaction set.
func NewRemoteTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return NewTransactionError(code, message, joinStoreError(err))
}
