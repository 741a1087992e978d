package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the failure shape every handler renders: a stable code for
// clients, a readable message and the HTTP status it maps to.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is compares codes, so a clone with a record-specific message still matches its template.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// New creates a template error.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches a cause under an explicit code and status.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// WrapAs attaches a cause under the code and status of template.
func WrapAs(template *Error, err error, message string) *Error {
	if template == nil {
		template = ErrInternal
	}
	if message == "" {
		message = template.Message
	}
	return Wrap(err, template.Code, template.Status, message)
}

// Templates. Record, import and backup failures clone or wrap one of these.
var (
	ErrInvalidCredentials = New("INVALID_CREDENTIALS", http.StatusUnauthorized, "invalid email or password")
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrForbidden          = New("FORBIDDEN", http.StatusForbidden, "forbidden")

	ErrNotFound   = New("NOT_FOUND", http.StatusNotFound, "record not found")
	ErrConflict   = New("CONFLICT", http.StatusConflict, "record id already exists")
	ErrValidation = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")

	// ErrPreconditionFailed guards the confirmation-gated wipe.
	ErrPreconditionFailed = New("PRECONDITION_FAILED", http.StatusPreconditionFailed, "precondition failed")
	ErrImportFileInvalid  = New("IMPORT_FILE_INVALID", http.StatusBadRequest, "spreadsheet could not be processed")
	ErrPayloadTooLarge    = New("PAYLOAD_TOO_LARGE", http.StatusRequestEntityTooLarge, "payload too large")

	// ErrCacheMiss never reaches a client; the stats cache turns it into recomputation.
	ErrCacheMiss = New("CACHE_MISS", http.StatusNotFound, "cache miss")
	ErrInternal  = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
)

// FromError returns err as an *Error, wrapping anything untyped as internal.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return WrapAs(ErrInternal, err, "")
}

// Clone copies a template, optionally replacing its message.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
