package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrInvalidFormat indicates that imported text is not JSON or not a JSON object.
var ErrInvalidFormat = errors.New("invalid JSON")

// ErrMissingFields indicates that an imported document lacks sender, receiver or details.
var ErrMissingFields = errors.New("missing required fields")

// ErrSessionNotInitialized indicates a session was used before it was created
// through its constructor. This is a caller bug, not a data problem.
var ErrSessionNotInitialized = errors.New("session not initialized")

// ImportErrorKind is the message identifier surfaced to the user for a failed import.
type ImportErrorKind string

const (
	KindInvalidJSON   ImportErrorKind = "errors.invalidJson"
	KindMissingFields ImportErrorKind = "errors.missingFields"
	KindParseFailed   ImportErrorKind = "errors.parseFailed"
)

// ImportError is returned when a document cannot be loaded from external text.
type ImportError struct {
	Kind ImportErrorKind
	Err  error
}

// Error implements the error interface.
func (e *ImportError) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Err.Error()
	}
	return string(e.Kind)
}

// Unwrap allows errors.Is/As to inspect the underlying error.
func (e *ImportError) Unwrap() error {
	return e.Err
}

// Message returns the text shown to the user: the kind identifier for the
// categorized failures, the underlying message for generic ones.
func (e *ImportError) Message() string {
	if e.Kind == KindParseFailed && e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

// NewImportError constructs an ImportError.
func NewImportError(kind ImportErrorKind, err error) *ImportError {
	return &ImportError{Kind: kind, Err: err}
}
