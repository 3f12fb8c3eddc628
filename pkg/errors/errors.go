package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Dispatcher construction errors
	ErrInvalidActionsList    ErrorCode = "INVALID_ACTIONS_LIST"
	ErrInvalidDispatch       ErrorCode = "INVALID_DISPATCH"
	ErrInvalidMiddlewareList ErrorCode = "INVALID_MIDDLEWARE_LIST"

	// Dispatch errors
	ErrUnknownActionType ErrorCode = "UNKNOWN_ACTION_TYPE"
	ErrInvalidMeta       ErrorCode = "INVALID_META"
	ErrNextReentered     ErrorCode = "NEXT_REENTERED"

	// Middleware errors
	ErrActionFiltered ErrorCode = "ACTION_FILTERED"
	ErrHandlerPanic   ErrorCode = "HANDLER_PANIC"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Journal errors
	ErrJournalWrite ErrorCode = "JOURNAL_WRITE"
	ErrJournalRead  ErrorCode = "JOURNAL_READ"
)

// HermesError represents a structured error with code and details
type HermesError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *HermesError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *HermesError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *HermesError) Is(target error) bool {
	var targetErr *HermesError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new HermesError with the given code and message
func New(code ErrorCode, message string) *HermesError {
	return &HermesError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new HermesError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *HermesError {
	return &HermesError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a HermesError
func Wrap(err error, code ErrorCode, message string) *HermesError {
	if err == nil {
		return nil
	}
	return &HermesError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *HermesError {
	if err == nil {
		return nil
	}
	return &HermesError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Kind returns a bare error carrying only code, suitable as an errors.Is target.
func Kind(code ErrorCode) error {
	return &HermesError{Code: code}
}

// WithDetail adds a detail to the error
func (e *HermesError) WithDetail(key string, value interface{}) *HermesError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *HermesError) WithDetails(details map[string]interface{}) *HermesError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var hermesErr *HermesError
	if errors.As(err, &hermesErr) {
		return hermesErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a HermesError
func GetErrorCode(err error) ErrorCode {
	var hermesErr *HermesError
	if errors.As(err, &hermesErr) {
		return hermesErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a HermesError
func GetErrorDetails(err error) map[string]interface{} {
	var hermesErr *HermesError
	if errors.As(err, &hermesErr) {
		return hermesErr.Details
	}
	return nil
}
