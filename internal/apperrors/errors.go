package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found or is
// not owned by the caller.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidAmount indicates a zero, negative, or otherwise unusable monetary amount.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrInsufficientFunds indicates that a debit would drive an account balance
// below what its kind allows.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrSameAccount indicates a transfer where source and destination are the same account.
var ErrSameAccount = errors.New("source and destination account are the same")

// ErrInvalidRecipient indicates an empty or malformed external recipient identifier.
var ErrInvalidRecipient = errors.New("invalid recipient")

// ErrInvalidStatusTransition indicates a transaction status change that is not allowed.
var ErrInvalidStatusTransition = errors.New("invalid status transition")

// ErrStorageUnavailable indicates that the backing store could not be reached.
var ErrStorageUnavailable = errors.New("storage unavailable")

// AppError wraps a lower-level failure with an HTTP-ish code and a message
// describing the operation that failed.
type AppError struct {
	Code    int
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, cause error) *AppError {
	return &AppError{Code: code, Message: message, Cause: cause}
}

// NewNotFoundError creates an AppError that matches errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Cause: ErrNotFound}
}
