package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors covering the correspondence pipeline taxonomy.
var (
	// ErrValidation covers missing files, blank instructions and
	// operations attempted while a mutually-exclusive one is running.
	ErrValidation = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")

	// ErrDeviceAccess signals the microphone could not be acquired.
	ErrDeviceAccess = New("DEVICE_ACCESS_ERROR", http.StatusConflict, "audio device unavailable")

	// ErrExternalService covers generation, transcription and analysis call failures.
	ErrExternalService = New("EXTERNAL_SERVICE_ERROR", http.StatusBadGateway, "external service call failed")

	// ErrParse signals a non-conforming payload from the compliance call.
	ErrParse = New("PARSE_ERROR", http.StatusBadGateway, "malformed external service response")

	// ErrConflict covers duplicate usernames and removal of the last admin.
	ErrConflict = New("CONFLICT", http.StatusConflict, "conflict")

	// ErrStorage marks best-effort persistence failures. It is logged,
	// never returned to the triggering user action.
	ErrStorage = New("STORAGE_ERROR", http.StatusInternalServerError, "persistence write failed")

	ErrInvalidCredentials = New("INVALID_CREDENTIALS", http.StatusUnauthorized, "invalid username or password")
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrForbidden          = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
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

// Is reports whether err carries the same code as target.
func Is(err error, target *Error) bool {
	if err == nil || target == nil {
		return false
	}
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == target.Code
}
