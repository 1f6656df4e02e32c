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
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Command-input errors
	ErrNoFormatSelected     ErrorCode = "NO_FORMAT_SELECTED"
	ErrOptionRequiresFormat ErrorCode = "OPTION_REQUIRES_FORMAT"
	ErrInvalidSpec          ErrorCode = "INVALID_SPEC"
	ErrTripletUnknown       ErrorCode = "TRIPLET_UNKNOWN"

	// Plan errors
	ErrEmptyPlan           ErrorCode = "EMPTY_PLAN"
	ErrUnbuiltDependencies ErrorCode = "UNBUILT_DEPENDENCIES"
	ErrStatusLoad          ErrorCode = "STATUS_LOAD"

	// Staging errors
	ErrStagingPrepare  ErrorCode = "STAGING_PREPARE"
	ErrInstallReplay   ErrorCode = "INSTALL_REPLAY"
	ErrIntegrationCopy ErrorCode = "INTEGRATION_COPY"

	// Packaging errors
	ErrArchiveCreate ErrorCode = "ARCHIVE_CREATE"
	ErrNugetPack     ErrorCode = "NUGET_PACK"
	ErrIFWExport     ErrorCode = "IFW_EXPORT"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileCreate   ErrorCode = "FILE_CREATE"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"
)

// PorticoError represents a structured error with code and details
type PorticoError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PorticoError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PorticoError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *PorticoError) Is(target error) bool {
	var targetErr *PorticoError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new PorticoError with the given code and message
func New(code ErrorCode, message string) *PorticoError {
	return &PorticoError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new PorticoError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PorticoError {
	return &PorticoError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a PorticoError
func Wrap(err error, code ErrorCode, message string) *PorticoError {
	if err == nil {
		return nil
	}
	return &PorticoError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PorticoError {
	if err == nil {
		return nil
	}
	return &PorticoError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *PorticoError) WithDetail(key string, value interface{}) *PorticoError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var perr *PorticoError
	if errors.As(err, &perr) {
		return perr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a PorticoError
func GetErrorCode(err error) ErrorCode {
	var perr *PorticoError
	if errors.As(err, &perr) {
		return perr.Code
	}
	return ErrUnknown
}
