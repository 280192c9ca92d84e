package server

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType is the category of an API error.
type ErrorType string

const (
	ErrorTypeValidation       ErrorType = "validation"
	ErrorTypeNotFound         ErrorType = "not_found"
	ErrorTypeMethodNotAllowed ErrorType = "method_not_allowed"
	ErrorTypeRateLimited      ErrorType = "rate_limited"
	ErrorTypeInternal         ErrorType = "internal"
)

// APIError is an error with a client-facing category.
type APIError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Validationf creates a validation error with formatting.
func Validationf(format string, args ...any) error {
	return &APIError{Type: ErrorTypeValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf creates a not found error with formatting.
func NotFoundf(format string, args ...any) error {
	return &APIError{Type: ErrorTypeNotFound, Message: fmt.Sprintf(format, args...)}
}

// WrapInternal wraps an error as an internal error.
func WrapInternal(message string, err error) error {
	return &APIError{Type: ErrorTypeInternal, Message: message, Err: err}
}

// TypeOf returns the category of err. Untyped errors are internal.
func TypeOf(err error) ErrorType {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Type
	}
	return ErrorTypeInternal
}

// StatusCode maps an error category to its HTTP status.
func StatusCode(t ErrorType) int {
	switch t {
	case ErrorTypeValidation:
		return http.StatusBadRequest
	case ErrorTypeNotFound:
		return http.StatusNotFound
	case ErrorTypeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case ErrorTypeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
