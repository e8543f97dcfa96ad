// Package errors defines the structured error taxonomy for the assistant core.
package errors

import (
	"fmt"
)

// ErrorCode represents a specific error type for assistant operations.
type ErrorCode string

const (
	// ErrCodeUnparseableDate indicates a date phrase matched no resolution rule.
	ErrCodeUnparseableDate ErrorCode = "UNPARSEABLE_DATE"
	// ErrCodeUnparseableTime indicates a time phrase matched no resolution rule.
	ErrCodeUnparseableTime ErrorCode = "UNPARSEABLE_TIME"
	// ErrCodeInferenceUnavailable indicates the language inference service failed.
	// This code is non-fatal everywhere; callers fall back to rule-only behavior.
	ErrCodeInferenceUnavailable ErrorCode = "INFERENCE_UNAVAILABLE"
	// ErrCodeCalendarUnavailable indicates the calendar service failed.
	ErrCodeCalendarUnavailable ErrorCode = "CALENDAR_UNAVAILABLE"
	// ErrCodeInvalidArgument indicates invalid input parameters.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
)

// Error represents a structured error for assistant operations.
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

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// GetCode returns the error code.
func (e *Error) GetCode() ErrorCode {
	return e.Code
}

// Convenience constructors for common error types.

// UnparseableDate creates an error for a date phrase no rule matched.
func UnparseableDate(phrase string) *Error {
	return &Error{Code: ErrCodeUnparseableDate, Message: fmt.Sprintf("unparseable date phrase: %q", phrase)}
}

// UnparseableTime creates an error for a time phrase no rule matched.
func UnparseableTime(phrase string) *Error {
	return &Error{Code: ErrCodeUnparseableTime, Message: fmt.Sprintf("unparseable time phrase: %q", phrase)}
}

// InferenceUnavailable creates an inference unavailable error.
func InferenceUnavailable(cause error) *Error {
	return &Error{Code: ErrCodeInferenceUnavailable, Message: "language inference unavailable", Cause: cause}
}

// CalendarUnavailable creates a calendar unavailable error.
func CalendarUnavailable(cause error) *Error {
	return &Error{Code: ErrCodeCalendarUnavailable, Message: "calendar service unavailable", Cause: cause}
}

// InvalidArgument creates an invalid argument error.
func InvalidArgument(msg string) *Error {
	return &Error{Code: ErrCodeInvalidArgument, Message: msg}
}

// Wrap wraps an existing error with a code and message.
func Wrap(cause error, code ErrorCode, msg string) *Error {
	return &Error{Code: code, Message: msg, Cause: cause}
}

// IsCode checks if an error is of a specific code.
func IsCode(err error, code ErrorCode) bool {
	if e, ok := err.(*Error); ok {
		return e.Code == code
	}
	return false
}

// GetCodeFromError extracts the error code from any error.
// Returns the provided default code if the error is not an *Error.
func GetCodeFromError(err error, defaultCode ErrorCode) ErrorCode {
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return defaultCode
}
