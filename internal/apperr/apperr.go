// Package apperr carries the error kinds shared by the service layer.
// The HTTP layer maps codes to status; nothing below it touches net/http.
package apperr

import "errors"

type Code string

const (
	CodeInvalid      Code = "invalid"
	CodeUnauthorized Code = "unauthorized"
	CodeForbidden    Code = "forbidden"
	CodeNotFound     Code = "not_found"
	CodeConflict     Code = "conflict"
	CodeStorage      Code = "storage"
)

type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string { return e.Message }

func Invalid(msg string) error      { return &Error{Code: CodeInvalid, Message: msg} }
func Unauthorized(msg string) error { return &Error{Code: CodeUnauthorized, Message: msg} }
func Forbidden(msg string) error    { return &Error{Code: CodeForbidden, Message: msg} }
func NotFound(msg string) error     { return &Error{Code: CodeNotFound, Message: msg} }
func Conflict(msg string) error     { return &Error{Code: CodeConflict, Message: msg} }

// Storage wraps a persistence failure. The original error is kept for logs;
// callers see only the generic message.
func Storage(err error) error {
	return &Error{Code: CodeStorage, Message: "storage error"}
}

func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func IsCode(err error, code Code) bool {
	e, ok := As(err)
	return ok && e.Code == code
}
