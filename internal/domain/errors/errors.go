// Package errors defines the application-level error taxonomy shared by
// all layers: domain failures carry an HTTP status and a stable business
// code so the delivery layer can map them without inspecting causes.
package errors

import (
	"net/http"

	"almacen/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// Is matches errors by taxonomy entry rather than pointer identity, so a
// copy produced by WithDetails still matches its predefined variable.
func (e *BaseError) Is(target error) bool {
	other, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == other.errorCode && e.message == other.message
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// ErrInvalidInput covers malformed or empty request fields. The
	// message names the offending field; user-correctable.
	ErrInvalidInput = NewBaseError(
		http.StatusBadRequest,
		"INVALID_INPUT",
		"Invalid input",
		"",
	)

	// ErrUnauthorized is the uniform rejection for credential mismatch,
	// unknown email at login and unauthorized reset attempts. The cause is
	// never distinguished in the response, so account existence does not leak.
	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"Invalid email or password",
		"",
	)

	// ErrResetUnauthorized rejects a reset consumption whose (email, token)
	// pair does not match an outstanding link, including replays of an
	// already-consumed token.
	ErrResetUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"Operation not authorized",
		"",
	)

	// ErrUnknownAccount is returned by reset requests for unregistered
	// emails. Unlike login, this surface reports the case distinctly,
	// which permits account enumeration; kept for backward compatibility.
	ErrUnknownAccount = NewBaseError(
		http.StatusUnauthorized,
		"UNKNOWN_ACCOUNT",
		"Account is not registered",
		"",
	)

	// ErrDuplicateEmail signals a registration conflict.
	ErrDuplicateEmail = NewBaseError(
		http.StatusConflict,
		"DUPLICATE_EMAIL",
		"This email is already registered",
		"",
	)

	// ErrCredentialProcessing covers hashing/encryption failures during
	// registration or reset. Not user-correctable.
	ErrCredentialProcessing = NewBaseError(
		http.StatusInternalServerError,
		"CREDENTIAL_PROCESSING_FAILED",
		"Failed to process credential",
		"",
	)

	// ErrInternal is the generic fallback for unexpected failures.
	ErrInternal = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the underlying database error.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
