package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const (
	CodeValidation     = "validation_error"
	CodeNotFound       = "not_found"
	CodeAuthentication = "authentication_required"
	CodeAuthorization  = "forbidden"
	CodeConflict       = "conflict"
	CodeInternal       = "internal_error"
)

// Error carries an HTTP status, a machine code, an optional field-keyed
// error map (signup/login surface field errors), and the wrapped cause.
type Error struct {
	Status int
	Code   string
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if len(e.Fields) > 0 {
		parts := make([]string, 0, len(e.Fields))
		for field, msg := range e.Fields {
			parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
		}
		return strings.Join(parts, "; ")
	}
	if e.Code != "" {
		return e.Code
	}
	return fmt.Sprintf("api error (%d)", e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func Validation(format string, args ...interface{}) *Error {
	return New(http.StatusBadRequest, CodeValidation, fmt.Errorf(format, args...))
}

// ValidationFields reports per-field messages, e.g. {"email": "...", "password": "..."}.
func ValidationFields(fields map[string]string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: CodeValidation, Fields: fields}
}

func NotFound(what string) *Error {
	return New(http.StatusNotFound, CodeNotFound, fmt.Errorf("%s not found", what))
}

func Unauthorized(format string, args ...interface{}) *Error {
	return New(http.StatusUnauthorized, CodeAuthentication, fmt.Errorf(format, args...))
}

func Forbidden(format string, args ...interface{}) *Error {
	return New(http.StatusForbidden, CodeAuthorization, fmt.Errorf(format, args...))
}

// Conflict reports a duplicate unique field. Clients expect 400 here, not
// 409.
func Conflict(field, message string) *Error {
	return &Error{
		Status: http.StatusBadRequest,
		Code:   CodeConflict,
		Fields: map[string]string{field: message},
		Err:    errors.New(message),
	}
}

func Internal(err error) *Error {
	return New(http.StatusInternalServerError, CodeInternal, err)
}

// From extracts an *Error from err, wrapping anything unknown as Internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return Internal(err)
}

// IsDuplicateKey pattern-matches unique-constraint violations from the store
// so they can be translated to user-facing field errors.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Error 1062")
}
