package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode categorizes an application error. The taxonomy is flat and
// derived from upstream HTTP statuses: the console does not invent error
// classes the server cannot produce.
type ErrorCode string

const (
	// ErrCodeUnauthorized indicates a rejected or missing credential (401).
	ErrCodeUnauthorized ErrorCode = "unauthorized"
	// ErrCodeForbidden indicates the action is not allowed for this user (403).
	ErrCodeForbidden ErrorCode = "forbidden"
	// ErrCodeNotFound indicates the resource no longer exists (404).
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeConflict indicates a business-rule violation such as
	// "last owner" or "already a member" (409).
	ErrCodeConflict ErrorCode = "conflict"
	// ErrCodeValidation indicates invalid input data (400/422).
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeUnavailable indicates the upstream API could not be reached
	// or answered with a server error.
	ErrCodeUnavailable ErrorCode = "unavailable"
	// ErrCodeInternal indicates a console-side failure.
	ErrCodeInternal ErrorCode = "internal"
)

// AppError is a structured application error with a code, the upstream HTTP
// status that produced it (0 for console-side errors), a human-readable
// message, and an optional cause. It supports errors.Is and errors.As.
type AppError struct {
	Code    ErrorCode
	Status  int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// FromStatus maps an upstream HTTP status to an AppError with the matching
// code. Statuses without a dedicated class collapse to unavailable (5xx) or
// validation (remaining 4xx).
func FromStatus(status int, message string) *AppError {
	if message == "" {
		message = http.StatusText(status)
	}
	return &AppError{Code: codeForStatus(status), Status: status, Message: message}
}

func codeForStatus(status int) ErrorCode {
	switch status {
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrCodeValidation
	}
	if status >= 500 {
		return ErrCodeUnavailable
	}
	return ErrCodeValidation
}

// Unauthorized creates a new unauthorized error.
func Unauthorized(message string) *AppError {
	return &AppError{Code: ErrCodeUnauthorized, Status: http.StatusUnauthorized, Message: message}
}

// Forbidden creates a new forbidden error.
func Forbidden(message string) *AppError {
	return &AppError{Code: ErrCodeForbidden, Status: http.StatusForbidden, Message: message}
}

// NotFound creates a new not-found error.
func NotFound(message string) *AppError {
	return &AppError{Code: ErrCodeNotFound, Status: http.StatusNotFound, Message: message}
}

// Conflict creates a new conflict error.
func Conflict(message string) *AppError {
	return &AppError{Code: ErrCodeConflict, Status: http.StatusConflict, Message: message}
}

// Validation creates a new validation error.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Status: http.StatusBadRequest, Message: message}
}

// Validationf creates a new validation error with a formatted message.
func Validationf(format string, args ...any) *AppError {
	return Validation(fmt.Sprintf(format, args...))
}

// Unavailable wraps a transport or server failure talking to the upstream API.
func Unavailable(message string, cause error) *AppError {
	return &AppError{Code: ErrCodeUnavailable, Message: message, Cause: cause}
}

// Internal creates a new internal error.
func Internal(message string) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: message}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsUnauthorized checks if an error is an unauthorized error.
func IsUnauthorized(err error) bool { return isCode(err, ErrCodeUnauthorized) }

// IsForbidden checks if an error is a forbidden error.
func IsForbidden(err error) bool { return isCode(err, ErrCodeForbidden) }

// IsNotFound checks if an error is a not-found error.
func IsNotFound(err error) bool { return isCode(err, ErrCodeNotFound) }

// IsConflict checks if an error is a conflict error.
func IsConflict(err error) bool { return isCode(err, ErrCodeConflict) }

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool { return isCode(err, ErrCodeValidation) }

// IsUnavailable checks if an error is an unavailable error.
func IsUnavailable(err error) bool { return isCode(err, ErrCodeUnavailable) }

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetStatus returns the upstream HTTP status from an error, or 0 when absent.
func GetStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return 0
}

// UserMessage returns a message safe to render to the user. AppError messages
// come from the upstream detail field and are already user-facing; anything
// else collapses to a generic failure message.
func UserMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return "Something went wrong. Please try again."
}
