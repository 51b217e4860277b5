package errors

import (
	"fmt"
)

// Common error types
var (
	// Configuration errors
	ErrMissingBaseURL = New("API base URL is required")
	ErrInvalidConfig  = New("invalid configuration")

	// Wire-contract error surfaces. The API never returns structured codes,
	// only these human-readable strings; views show them verbatim.
	ErrUploadFailed        = New("Upload failed")
	ErrLoadTaskFailed      = New("Failed to load task")
	ErrLoadSegmentsFailed  = New("Failed to load segments")
	ErrUpdateSegmentFailed = New("Failed to update segment")
	ErrUpdateSpeakerFailed = New("Failed to update speaker")
	ErrLoadHistoryFailed   = New("Failed to load history")
	ErrDeleteTaskFailed    = New("Failed to delete task")
	ErrExportFailed        = New("Export failed")
	ErrLoadProjectsFailed  = New("Failed to load projects")
	ErrCreateProjectFailed = New("Failed to create project")
	ErrDeleteProjectFailed = New("Failed to delete project")
	ErrLoadProjectFailed   = New("Failed to load project")
	ErrLoadFilesFailed     = New("Failed to load project files")
)

// Error represents a standardized error
type Error struct {
	message string
	cause   error
}

// New creates a new error
func New(message string) *Error {
	return &Error{message: message}
}

// Newf creates a new formatted error
func Newf(format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: message,
		cause:   err,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: fmt.Sprintf(format, args...),
		cause:   err,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Message returns the error surface without the underlying cause. Views show
// this string; the cause stays in logs.
func (e *Error) Message() string {
	return e.message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is checks if the error matches target
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.message == t.message
}

// Surface extracts the user-visible message from any error: the wire-contract
// surface for our own errors, err.Error() for everything else, and the given
// fallback when the error carries no message at all.
func Surface(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if e, ok := err.(*Error); ok {
		return e.Message()
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
