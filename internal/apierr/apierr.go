// Package apierr defines the typed errors handlers raise and the uniform
// JSON envelope they are rendered as: {"error": CODE, "message": text}.
package apierr

import (
	"fmt"
	"net/http"
)

// Machine-readable codes carried in the envelope's "error" field.
const (
	CodeBadRequest      = "BAD_REQUEST"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeTooManyRequests = "TOO_MANY_REQUESTS"
	CodeBadGateway      = "BAD_GATEWAY"
	CodeInternal        = "INTERNAL_ERROR"
)

// Error is an HTTP-mappable application error. Cause is for server logs only
// and never reaches the client payload.
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"error"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// WithCause attaches an underlying error for logging and returns the receiver.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return CodeBadRequest
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusConflict:
		return CodeConflict
	case http.StatusTooManyRequests:
		return CodeTooManyRequests
	case http.StatusBadGateway:
		return CodeBadGateway
	default:
		return CodeInternal
	}
}

// New builds an Error for status with the default code for that status.
func New(status int, message string) *Error {
	return &Error{Status: status, Code: codeForStatus(status), Message: message}
}

func BadRequest(message string) *Error   { return New(http.StatusBadRequest, message) }
func Unauthorized(message string) *Error { return New(http.StatusUnauthorized, message) }
func NotFound(message string) *Error     { return New(http.StatusNotFound, message) }
func Conflict(message string) *Error     { return New(http.StatusConflict, message) }
func BadGateway(message string) *Error   { return New(http.StatusBadGateway, message) }
func Internal(message string) *Error     { return New(http.StatusInternalServerError, message) }

func TooManyRequests(message string) *Error {
	return New(http.StatusTooManyRequests, message)
}
