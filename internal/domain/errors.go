package domain

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a failure for the boundary layer. The engines attach
// codes; handlers map them to HTTP status and never inspect messages.
type ErrorCode string

const (
	CodeBadRequest ErrorCode = "bad_request"
	CodeNotFound   ErrorCode = "not_found"
	CodeForbidden  ErrorCode = "forbidden"
	CodeConflict   ErrorCode = "conflict"
	CodeInternal   ErrorCode = "internal"
)

// Error is a coded domain failure. The message is developer-readable; any
// user-facing wording belongs to the boundary.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func BadRequest(msg string) error { return &Error{Code: CodeBadRequest, Message: msg} }
func NotFound(msg string) error   { return &Error{Code: CodeNotFound, Message: msg} }
func Forbidden(msg string) error  { return &Error{Code: CodeForbidden, Message: msg} }
func Conflict(msg string) error   { return &Error{Code: CodeConflict, Message: msg} }

func Internal(msg string, err error) error {
	return &Error{Code: CodeInternal, Message: msg, Err: err}
}

func BadRequestf(format string, args ...any) error {
	return BadRequest(fmt.Sprintf(format, args...))
}

func NotFoundf(format string, args ...any) error {
	return NotFound(fmt.Sprintf(format, args...))
}

// CodeOf extracts the error code, defaulting to internal for plain errors.
func CodeOf(err error) ErrorCode {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}
