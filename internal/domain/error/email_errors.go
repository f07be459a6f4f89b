package error

import "errors"

// ErrWelcomeEmailNotFound is returned when no welcome e-mail is stored with the id.
var ErrWelcomeEmailNotFound = errors.New("welcome email not found")

// EmailErrorCode identifies a welcome e-mail failure.
// Format: EMAIL-XXYYYY where XX is category and YYYY is specific error.
type EmailErrorCode string

const (
	// Outbox errors (01XXXX)
	ErrCodeEmailQueueFailed  EmailErrorCode = "EMAIL-010001"
	ErrCodeWelcomeNotFound   EmailErrorCode = "EMAIL-010002"
	ErrCodeOutboxUnavailable EmailErrorCode = "EMAIL-010003"

	// Provider errors (02XXXX)
	ErrCodePermanentEmailFailure EmailErrorCode = "EMAIL-020002"
	ErrCodeTemporaryEmailFailure EmailErrorCode = "EMAIL-020003"

	// Rendering errors (03XXXX)
	ErrCodeTemplateRenderFailed EmailErrorCode = "EMAIL-030002"
)

// EmailError represents an email error with code and message.
type EmailError struct {
	Code    EmailErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *EmailError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *EmailError) Unwrap() error {
	return e.Err
}

// ErrorKind classifies the error by its code.
func (e *EmailError) ErrorKind() Kind {
	switch e.Code {
	case ErrCodeWelcomeNotFound:
		return KindNotFound
	default:
		return KindRemote
	}
}

// NewEmailError creates a new EmailError with the given code and message.
func NewEmailError(code EmailErrorCode, message string, err error) *EmailError {
	return &EmailError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
