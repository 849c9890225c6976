// Package errors carries HTTP status codes alongside error messages so the
// web layer can tell input problems from internal failures.
package errors

import (
	"errors"
	"net/http"
)

type CustomError struct {
	Code    int
	Message string
	Err     error
}

func (e *CustomError) Error() string {
	return e.Message
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// Wrap marks err as a technical failure, keeping it for errors.Is/As.
func Wrap(err error, message string) error {
	return &CustomError{
		Code:    http.StatusInternalServerError,
		Message: message,
		Err:     err,
	}
}

// BadRequest is an input validation failure.
func BadRequest(message string) error {
	return &CustomError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// GetStatusCode extracts HTTP status code from error
func GetStatusCode(err error) int {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return http.StatusInternalServerError
}

// IsBadRequest reports whether err is an input validation failure.
func IsBadRequest(err error) bool {
	return GetStatusCode(err) == http.StatusBadRequest
}
