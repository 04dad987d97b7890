package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation conflicts with other stored data
// (for example deleting a sub-category that ledger entries still reference).
var ErrConflict = errors.New("resource conflict")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates that the user is not allowed to act on an entity or feature.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidTransition indicates an approval status change that the state machine does not allow.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrEditWindowClosed indicates an edit or delete attempted after the entry's creation day.
var ErrEditWindowClosed = errors.New("entry can only be changed on the day it was created")

// ErrRendererUnavailable indicates that PDF rendering is not configured.
var ErrRendererUnavailable = errors.New("pdf renderer is not configured")

// Balance engine diagnostics. These never abort a computation; they are
// attached to diagnostics so callers can tell them apart with errors.Is.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnresolvedReference = errors.New("unresolved reference")
	ErrMissingCarryForward = errors.New("missing carry-forward")
)

// AppError carries an HTTP-ish status code alongside a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError builds an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}
