package api

import (
	"fmt"
	"net/http"
)

// Error is the one failure type handlers return. Server.handle turns it into
// the error envelope; anything else becomes a 500.
type Error struct {
	Status  int
	Message string
	Errors  []string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d %s: %v", e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("%d %s", e.Status, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func BadRequest(message string) *Error {
	return newError(http.StatusBadRequest, message)
}

// ValidationFailed is a 400 carrying one message per offending field.
func ValidationFailed(message string, errs []string) *Error {
	e := newError(http.StatusBadRequest, message)
	e.Errors = errs
	return e
}

func Unauthorized(message string) *Error {
	return newError(http.StatusUnauthorized, message)
}

func NotFound(message string) *Error {
	return newError(http.StatusNotFound, message)
}

func Conflict(message string) *Error {
	return newError(http.StatusConflict, message)
}

func TooManyRequests(message string) *Error {
	return newError(http.StatusTooManyRequests, message)
}

// Internal hides err from the client but keeps it for the log.
func Internal(message string, err error) *Error {
	e := newError(http.StatusInternalServerError, message)
	e.Err = err
	return e
}
