package error

import "errors"

// Category domain errors.
var (
	// ErrSuggestionDescriptionRequired is returned when a suggestion is requested for an empty description.
	ErrSuggestionDescriptionRequired = errors.New("description is required")

	// ErrSuggestionUnavailable is returned when the AI suggester cannot answer.
	ErrSuggestionUnavailable = errors.New("category suggestion unavailable")
)

// CategoryErrorCode defines error codes for category errors.
// Format: CAT-XXYYYY where XX is category and YYYY is specific error.
type CategoryErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeSuggestionDescriptionRequired CategoryErrorCode = "CAT-010001"

	// Remote errors (02XXXX)
	ErrCodeCategoryListFailed CategoryErrorCode = "CAT-020001"
)

// CategoryError represents a category error with code and message.
type CategoryError struct {
	Code    CategoryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CategoryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CategoryError) Unwrap() error {
	return e.Err
}

// ErrorKind classifies the error by its code.
func (e *CategoryError) ErrorKind() Kind {
	if e.Code == ErrCodeSuggestionDescriptionRequired {
		return KindValidation
	}
	return KindRemote
}

// NewCategoryError creates a new CategoryError with the given code and message.
func NewCategoryError(code CategoryErrorCode, message string, err error) *CategoryError {
	return &CategoryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
