package apperrors

import (
	"errors"
	"fmt"
)

// Kind sentinels. Every AppError matches exactly one of these through errors.Is.
var (
	// ErrNotFound indicates that a requested resource could not be found.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation indicates that input data failed validation checks.
	ErrValidation = errors.New("validation error")

	// ErrConflict indicates the current state does not satisfy an operation's
	// precondition, or that a uniqueness rule would be violated.
	ErrConflict = errors.New("conflict")

	// ErrInvalidState indicates a referenced entity exists but cannot be used
	// in its current state (e.g. an inactive category).
	ErrInvalidState = errors.New("invalid state")

	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInternal indicates a storage or transaction failure.
	ErrInternal = errors.New("internal error")
)

// Machine readable codes carried in API responses.
const (
	CodeNotFound          = "NOT_FOUND"
	CodeValidation        = "VALIDATION_ERROR"
	CodeConflict          = "CONFLICT"
	CodeInvalidState      = "INVALID_STATE"
	CodeForbidden         = "FORBIDDEN"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeInternal          = "INTERNAL_ERROR"
	CodeDuplicate         = "DUPLICATE"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeVoucherExists     = "VOUCHER_EXISTS"
	CodeReceiptRequired   = "RECEIPT_REQUIRED"
	CodeCategoryInactive  = "CATEGORY_INACTIVE"
	CodeLockTimeout       = "LOCK_TIMEOUT"
)

// AppError is the error type returned across service boundaries.
type AppError struct {
	Kind    error
	Code    string
	Message string
	Details map[string]any
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Is reports whether target is this error's kind sentinel.
func (e *AppError) Is(target error) bool {
	return e.Kind == target
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetails attaches structured details surfaced to API callers.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

// New builds an AppError of the given kind.
func New(kind error, code, message string, err error) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message, Err: err}
}

func NewNotFoundError(message string) *AppError {
	return New(ErrNotFound, CodeNotFound, message, nil)
}

func NewValidationError(message string) *AppError {
	return New(ErrValidation, CodeValidation, message, nil)
}

func NewConflictError(code, message string) *AppError {
	if code == "" {
		code = CodeConflict
	}
	return New(ErrConflict, code, message, nil)
}

func NewInvalidStateError(code, message string) *AppError {
	if code == "" {
		code = CodeInvalidState
	}
	return New(ErrInvalidState, code, message, nil)
}

func NewForbiddenError(message string) *AppError {
	return New(ErrForbidden, CodeForbidden, message, nil)
}

func NewUnauthorizedError(message string) *AppError {
	return New(ErrUnauthorized, CodeUnauthorized, message, nil)
}

// NewInternalError wraps a storage or infrastructure failure.
func NewInternalError(message string, err error) *AppError {
	return New(ErrInternal, CodeInternal, message, err)
}

// CodeOf returns the machine readable code of err, falling back to the
// internal error code for errors that are not AppErrors.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}
