package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/noah-isme/student-records-api/pkg/validation"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string                  `json:"code"`
	Message string                  `json:"message"`
	Status  int                     `json:"status"`
	Fields  []validation.FieldError `json:"fields,omitempty"`
	Err     error                   `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches errors sharing the same code so clones compare equal to their sentinel.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrValidation   = New("VALIDATION_ERROR", http.StatusBadRequest, "Validation failed")
	ErrInvalidID    = New("INVALID_ID", http.StatusBadRequest, "Invalid student ID")
	ErrBadRequest   = New("BAD_REQUEST", http.StatusBadRequest, "Invalid request payload")
	ErrUnauthorized = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrNotFound     = New("NOT_FOUND", http.StatusNotFound, "Student not found")
	ErrRouteMissing = New("ROUTE_NOT_FOUND", http.StatusNotFound, "Resource not found")
	ErrConflict     = New("CONFLICT", http.StatusConflict, "A student with this email already exists")
	ErrInternal     = New("INTERNAL_ERROR", http.StatusInternalServerError, "An unexpected error occurred")
	ErrUnavailable  = New("UNAVAILABLE", http.StatusServiceUnavailable, "service unavailable")
	ErrCacheMiss    = errors.New("cache miss")
)

// Validation returns a validation error carrying the field errors.
func Validation(fields []validation.FieldError) *Error {
	clone := *ErrValidation
	clone.Fields = fields
	return &clone
}

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, err.Error())
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
