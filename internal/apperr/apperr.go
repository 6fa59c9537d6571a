// Package apperr defines the application errors that the service layer raises
// deliberately. Each kind maps to a fixed HTTP status; any error that is not an
// *Error is treated as unexpected and rendered as a 500.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an application error.
type Kind int

const (
	ValidationFailed Kind = iota + 1
	NotFound
	Conflict
	OperationFailed
	Unauthorized
)

// Error is a known application failure with a client-facing message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Status returns the HTTP status code for the error kind.
func (e *Error) Status() int {
	switch e.Kind {
	case ValidationFailed, OperationFailed:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case Unauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Validation returns a ValidationFailed error.
func Validation(message string) *Error {
	return &Error{Kind: ValidationFailed, Message: message}
}

// NewNotFound returns a NotFound error.
func NewNotFound(message string) *Error {
	return &Error{Kind: NotFound, Message: message}
}

// NewConflict returns a Conflict error.
func NewConflict(message string) *Error {
	return &Error{Kind: Conflict, Message: message}
}

// NewOperationFailed returns an OperationFailed error.
func NewOperationFailed(message string) *Error {
	return &Error{Kind: OperationFailed, Message: message}
}

// NewUnauthorized returns an Unauthorized error.
func NewUnauthorized(message string) *Error {
	return &Error{Kind: Unauthorized, Message: message}
}

// As reports whether err is (or wraps) an application error and returns it.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind reports whether err is an application error of the given kind.
func IsKind(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}
