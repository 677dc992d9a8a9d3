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
	ErrInterrupted  ErrorCode = "INTERRUPTED"

	// Metadata errors
	ErrMetadataNotFound ErrorCode = "METADATA_NOT_FOUND"
	ErrMetadataFormat   ErrorCode = "METADATA_FORMAT"
	ErrMetadataSection  ErrorCode = "METADATA_SECTION"

	// Feature graph errors
	ErrFeatureUnknown ErrorCode = "FEATURE_UNKNOWN"
	ErrGraphInvalid   ErrorCode = "GRAPH_INVALID"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Template source errors
	ErrTemplateNotFound ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrGitURLInvalid    ErrorCode = "GIT_URL_INVALID"
	ErrCloneAuth        ErrorCode = "CLONE_AUTH"
	ErrCloneNotFound    ErrorCode = "CLONE_NOT_FOUND"
	ErrCloneNetwork     ErrorCode = "CLONE_NETWORK"
	ErrCloneTimeout     ErrorCode = "CLONE_TIMEOUT"
	ErrCloneFailed      ErrorCode = "CLONE_FAILED"

	// FileSystem errors
	ErrFileNotFound   ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess     ErrorCode = "FILE_ACCESS"
	ErrFileEncoding   ErrorCode = "FILE_ENCODING"
	ErrFileWrite      ErrorCode = "FILE_WRITE"
	ErrDirCreate      ErrorCode = "DIR_CREATE"
	ErrCopyFailed     ErrorCode = "COPY_FAILED"
	ErrRenameFailed   ErrorCode = "RENAME_FAILED"
	ErrTargetConflict ErrorCode = "TARGET_CONFLICT"

	// External process errors
	ErrToolMissing    ErrorCode = "TOOL_MISSING"
	ErrCommandFailed  ErrorCode = "COMMAND_FAILED"
	ErrCommandTimeout ErrorCode = "COMMAND_TIMEOUT"
)

// Error represents a structured error with code and details
type Error struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *Error) Is(target error) bool {
	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new Error with the given code and message
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new Error with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an Error
func Wrap(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsCode checks if an error has a specific error code
func IsCode(err error, code ErrorCode) bool {
	var bspErr *Error
	if errors.As(err, &bspErr) {
		return bspErr.Code == code
	}
	return false
}

// CodeOf returns the error code from an error, or ErrUnknown if not an Error
func CodeOf(err error) ErrorCode {
	var bspErr *Error
	if errors.As(err, &bspErr) {
		return bspErr.Code
	}
	return ErrUnknown
}
