package error

import "errors"

// Background preference errors.
var (
	// ErrBackgroundPersistFailed is returned when the remote store rejects the new background.
	ErrBackgroundPersistFailed = errors.New("failed to save background preference")
)

// BackgroundErrorCode defines error codes for background preference errors.
// Format: BG-XXYYYY where XX is category and YYYY is specific error.
type BackgroundErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidBackground BackgroundErrorCode = "BG-010001"

	// Remote store errors (02XXXX)
	ErrCodeBackgroundPersistFailed BackgroundErrorCode = "BG-020001"
	ErrCodeBackgroundFetchFailed   BackgroundErrorCode = "BG-020002"

	// Concurrency errors (03XXXX)
	ErrCodeBackgroundInFlight BackgroundErrorCode = "BG-030001"
)

// BackgroundError represents a background preference error with code and message.
type BackgroundError struct {
	Code    BackgroundErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BackgroundError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BackgroundError) Unwrap() error {
	return e.Err
}

// ErrorKind classifies the error by its code.
func (e *BackgroundError) ErrorKind() Kind {
	switch e.Code {
	case ErrCodeInvalidBackground:
		return KindValidation
	case ErrCodeBackgroundInFlight:
		return KindConflict
	default:
		return KindRemote
	}
}

// NewBackgroundError creates a new BackgroundError with the given code and message.
func NewBackgroundError(code BackgroundErrorCode, message string, err error) *BackgroundError {
	return &BackgroundError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
