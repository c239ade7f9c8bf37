// Package errors provides domain-specific error types for turrishw.
//
// Errors carry a code so callers can tell a broken host environment (which
// must be propagated) from conditions that only affect a single interface.
package errors

import "fmt"

// ErrorCode represents a category of error that can occur in the application.
type ErrorCode string

const (
	// ErrCodeConfig indicates a configuration-related error.
	ErrCodeConfig ErrorCode = "CONFIG_ERROR"

	// ErrCodeNotFound indicates a sysfs path that does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeUnreadable indicates a sysfs path that exists but cannot be read.
	ErrCodeUnreadable ErrorCode = "UNREADABLE"

	// ErrCodeEnvironment indicates that the core filesystem (board model,
	// network class directory) is not usable. Such errors are never masked.
	ErrCodeEnvironment ErrorCode = "ENVIRONMENT_ERROR"

	// ErrCodeUnsupportedBoard indicates a board model without a classifier.
	ErrCodeUnsupportedBoard ErrorCode = "UNSUPPORTED_BOARD"

	// ErrCodeInterface indicates an error related to a single network interface.
	ErrCodeInterface ErrorCode = "INTERFACE_ERROR"

	// ErrCodeValidation indicates a validation error.
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"

	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Error represents a domain-specific error with an error code and optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error for errors.Is and errors.As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a new domain error with the specified code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Wrap creates a new domain error wrapping an existing error.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// HasCode reports whether err, or any error it wraps, carries the given code.
func HasCode(err error, code ErrorCode) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Code == code {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// NewConfigError creates a new configuration error.
func NewConfigError(message string, cause error) *Error {
	return Wrap(ErrCodeConfig, message, cause)
}

// NewNotFoundError creates an error for a missing sysfs path.
func NewNotFoundError(message string, cause error) *Error {
	return Wrap(ErrCodeNotFound, message, cause)
}

// NewUnreadableError creates an error for a sysfs path that cannot be read.
func NewUnreadableError(message string, cause error) *Error {
	return Wrap(ErrCodeUnreadable, message, cause)
}

// NewEnvironmentError creates an error for a broken host environment.
func NewEnvironmentError(message string, cause error) *Error {
	return Wrap(ErrCodeEnvironment, message, cause)
}

// NewUnsupportedBoardError creates an error for a board without a classifier.
func NewUnsupportedBoardError(message string) *Error {
	return New(ErrCodeUnsupportedBoard, message)
}

// NewInterfaceError creates a new interface-related error.
func NewInterfaceError(message string, cause error) *Error {
	return Wrap(ErrCodeInterface, message, cause)
}

// NewValidationError creates a new validation error.
func NewValidationError(message string, cause error) *Error {
	return Wrap(ErrCodeValidation, message, cause)
}

// NewInternalError creates a new internal error.
func NewInternalError(message string, cause error) *Error {
	return Wrap(ErrCodeInternal, message, cause)
}
