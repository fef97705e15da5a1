// Package apperror classifies failures so the HTTP layer can map them to status codes.
package apperror

import (
	"errors"
	"net/http"
)

// ErrorType represents the category of an error.
type ErrorType string

const (
	// TypeValidation indicates invalid input (HTTP 400)
	TypeValidation ErrorType = "validation"
	// TypeNotFound indicates an empty result (HTTP 404)
	TypeNotFound ErrorType = "not_found"
	// TypeExternal indicates a failing upstream such as the Reddit API (HTTP 500)
	TypeExternal ErrorType = "external"
	// TypeInternal indicates any other failure (HTTP 500)
	TypeInternal ErrorType = "internal"
)

// Error is a classified error. Message is what clients see.
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return string(e.Type)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the status code for this error type.
func (e *Error) HTTPStatus() int {
	switch e.Type {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Validation creates a validation error (HTTP 400).
func Validation(message string) *Error {
	return &Error{Type: TypeValidation, Message: message}
}

// NotFound creates a not-found error (HTTP 404).
func NotFound(message string) *Error {
	return &Error{Type: TypeNotFound, Message: message}
}

// External wraps an upstream failure. The cause's text is kept as the message.
func External(cause error) *Error {
	return &Error{Type: TypeExternal, Cause: cause}
}

// Internal wraps an unexpected failure. The cause's text is kept as the message.
func Internal(cause error) *Error {
	return &Error{Type: TypeInternal, Cause: cause}
}

// As returns err as an *Error, wrapping unclassified errors as internal.
func As(err error) *Error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
