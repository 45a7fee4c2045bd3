// Package apperr is the error taxonomy shared by the store and the HTTP layer.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	// StoreFailure is the zero value so an unclassified error is never
	// reported to a client as its own fault.
	StoreFailure Kind = iota
	InvalidInput
	NotFound
	Unauthorized
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid_input"
	case NotFound:
		return "not_found"
	case Unauthorized:
		return "unauthorized"
	default:
		return "store_failure"
	}
}

// Status is the HTTP status a kind is reported with.
func (k Kind) Status() int {
	switch k {
	case InvalidInput:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Unauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Error carries a user-facing message and the underlying cause.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

func Invalid(message string) *Error {
	return New(InvalidInput, message)
}

func Missing(message string) *Error {
	return New(NotFound, message)
}

func Store(message string, cause error) *Error {
	return Wrap(StoreFailure, message, cause)
}

// KindOf reports the kind of err, StoreFailure for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return StoreFailure
}

func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
