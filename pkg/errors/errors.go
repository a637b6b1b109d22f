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

	// Settings document errors
	ErrParse   ErrorCode = "PARSE"
	ErrPersist ErrorCode = "PERSIST"

	// Install pipeline errors
	ErrArchive    ErrorCode = "ARCHIVE"
	ErrFilesystem ErrorCode = "FILESYSTEM"

	// Environment errors
	ErrGamePath   ErrorCode = "GAME_PATH"
	ErrConfigLoad ErrorCode = "CONFIG_LOAD"
	ErrModInfo    ErrorCode = "MODINFO"
)

// ModotError represents a structured error with code and details
type ModotError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ModotError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ModotError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ModotError) Is(target error) bool {
	var targetErr *ModotError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ModotError with the given code and message
func New(code ErrorCode, message string) *ModotError {
	return &ModotError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ModotError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ModotError {
	return &ModotError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ModotError
func Wrap(err error, code ErrorCode, message string) *ModotError {
	if err == nil {
		return nil
	}
	return &ModotError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ModotError {
	if err == nil {
		return nil
	}
	return &ModotError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ModotError) WithDetail(key string, value interface{}) *ModotError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var modotErr *ModotError
	if errors.As(err, &modotErr) {
		return modotErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ModotError
func GetErrorCode(err error) ErrorCode {
	var modotErr *ModotError
	if errors.As(err, &modotErr) {
		return modotErr.Code
	}
	return ErrUnknown
}
