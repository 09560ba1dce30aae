// Package webutil provides the HTTP plumbing shared by all handlers: a typed
// error carrying a status code and user-facing message, JSON response
// helpers, and an adapter turning error-returning handlers into
// http.HandlerFunc.
package webutil

import (
	"errors"
	"net/http"
)

// HTTPError is an error with an associated HTTP status code and a
// user-facing message. The service layer raises it; the handler boundary
// translates it verbatim into the response.
type HTTPError struct {
	cause   error
	Code    int
	Message string
}

// Error implements the error interface. It returns the Message, which is
// intended for the HTTP response body.
func (he *HTTPError) Error() string {
	return he.Message
}

// Unwrap provides compatibility for errors.Is and errors.As.
func (he *HTTPError) Unwrap() error {
	return he.cause
}

// NewHTTPError creates an HTTPError with a code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		cause:   errors.New(message),
		Code:    code,
		Message: message,
	}
}

// NewHTTPErrorWrap creates an HTTPError that wraps an underlying cause.
func NewHTTPErrorWrap(code int, message string, cause error) *HTTPError {
	return &HTTPError{
		cause:   cause,
		Code:    code,
		Message: message,
	}
}

func ErrBadRequest(message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message)
}

func ErrUnauthorized(message string) *HTTPError {
	return NewHTTPError(http.StatusUnauthorized, message)
}

func ErrNotFound(message string) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message)
}

func ErrNotAcceptable(message string) *HTTPError {
	return NewHTTPError(http.StatusNotAcceptable, message)
}

func ErrConflict(message string) *HTTPError {
	return NewHTTPError(http.StatusConflict, message)
}

func ErrInternalServerWrap(message string, cause error) *HTTPError {
	return NewHTTPErrorWrap(http.StatusInternalServerError, message, cause)
}
