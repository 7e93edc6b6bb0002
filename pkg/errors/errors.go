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
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad           ErrorCode = "CONFIG_LOAD"
	ErrConfigParse          ErrorCode = "CONFIG_PARSE"
	ErrUnsupportedPlatform  ErrorCode = "UNSUPPORTED_PLATFORM"
	ErrInvalidConfiguration ErrorCode = "INVALID_CONFIGURATION"

	// Macro errors
	ErrMacroResolve  ErrorCode = "MACRO_RESOLVE"
	ErrManifestFetch ErrorCode = "MANIFEST_FETCH"

	// Generation errors
	ErrGenerate         ErrorCode = "GENERATE"
	ErrTemplateManifest ErrorCode = "TEMPLATE_MANIFEST"
	ErrPlistParse       ErrorCode = "PLIST_PARSE"
	ErrJSONParse        ErrorCode = "JSON_PARSE"

	// FileSystem errors
	ErrFileRead  ErrorCode = "FILE_READ"
	ErrFileWrite ErrorCode = "FILE_WRITE"
	ErrDirCreate ErrorCode = "DIR_CREATE"

	// Subprocess errors
	ErrCommand ErrorCode = "COMMAND"
)

// DynError represents a structured error with code and details
type DynError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DynError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DynError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *DynError) Is(target error) bool {
	var targetErr *DynError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DynError with the given code and message
func New(code ErrorCode, message string) *DynError {
	return &DynError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DynError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DynError {
	return &DynError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a DynError
func Wrap(err error, code ErrorCode, message string) *DynError {
	if err == nil {
		return nil
	}
	return &DynError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DynError {
	if err == nil {
		return nil
	}
	return &DynError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *DynError) WithDetail(key string, value interface{}) *DynError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var dynErr *DynError
	if errors.As(err, &dynErr) {
		return dynErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DynError
func GetErrorCode(err error) ErrorCode {
	var dynErr *DynError
	if errors.As(err, &dynErr) {
		return dynErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a DynError
func GetErrorDetails(err error) map[string]interface{} {
	var dynErr *DynError
	if errors.As(err, &dynErr) {
		return dynErr.Details
	}
	return nil
}
