package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for the request boundary.
type Kind int

const (
	KindUnexpected Kind = iota
	KindNotFound
	KindValidation
	KindTransactional
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindTransactional:
		return "transactional"
	default:
		return "unexpected"
	}
}

// Generic codes, domains define their own on top.
const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeInvalidID     = "INVALID_ID"
	CodeInvalidBody   = "INVALID_REQUEST"
	CodeTransactional = "TRANSACTION_FAILED"
	CodeInternal      = "INTERNAL_ERROR"
)

// Error is the application error carried from services to handlers.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound builds a 404 error for a missing resource.
func NotFound(code, message string, err error) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: message, Err: err}
}

// Validation wraps a validation failure; its message is shown to the caller.
func Validation(err error) *Error {
	return &Error{Kind: KindValidation, Code: CodeValidation, Message: err.Error()}
}

// Validationf builds a validation error from a format string.
func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// Transactional marks a failure after which the surrounding transaction was rolled back.
func Transactional(message string, err error) *Error {
	return &Error{Kind: KindTransactional, Code: CodeTransactional, Message: message, Err: err}
}

// Unexpected wraps store connectivity and other server-side failures.
func Unexpected(err error) *Error {
	return &Error{Kind: KindUnexpected, Code: CodeInternal, Message: "Internal server error", Err: err}
}

// KindOf returns the Kind of err, KindUnexpected for foreign errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnexpected
}

// HTTPStatus maps err to a response status.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Public returns the code and the message safe to show to API callers.
func Public(err error) (code, message string) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code, appErr.Message
	}
	return CodeInternal, "Internal server error"
}
