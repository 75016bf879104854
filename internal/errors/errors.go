package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for programmatic handling
const (
	// System errors
	ErrCodeGitNotFound = "GIT_NOT_FOUND"
	ErrCodeFileSystem  = "FILE_SYSTEM"

	// Configuration errors
	ErrCodeConfigInvalid     = "CONFIG_INVALID"
	ErrCodeConfigMissing     = "CONFIG_MISSING"
	ErrCodeInvalidMode       = "INVALID_MODE"
	ErrCodeInvalidBranchName = "INVALID_BRANCH_NAME"
	ErrCodeInvalidRemote     = "INVALID_REMOTE"
	ErrCodeNotImplemented    = "NOT_IMPLEMENTED"

	// Repository state errors
	ErrCodeBranchNotFound = "BRANCH_NOT_FOUND"

	// Git operation errors
	ErrCodeGitOperation = "GIT_OPERATION"
	ErrCodePushConflict = "PUSH_CONFLICT"
)

// configurationCodes are detected before the working tree is touched.
var configurationCodes = map[string]bool{
	ErrCodeConfigInvalid:     true,
	ErrCodeConfigMissing:     true,
	ErrCodeInvalidMode:       true,
	ErrCodeInvalidBranchName: true,
	ErrCodeInvalidRemote:     true,
	ErrCodeNotImplemented:    true,
}

// ArtifactError represents a standardized error with code and context.
//
// ArtifactError provides structured error handling for artifact builds with:
//   - Code: standardized error code for programmatic handling
//   - Message: human-readable error description
//   - Cause: underlying error that caused this error (optional)
//   - Context: additional contextual information as key-value pairs
//   - Operation: the operation that failed (optional)
//
// Example usage:
//
//	err := ErrBranchNotFound("3f2a9c1")
//	if IsArtifactError(err, ErrCodeBranchNotFound) {
//	  // Skip deployment
//	}
type ArtifactError struct {
	Code      string                 // Standardized error code (see ErrCode* constants)
	Message   string                 // Human-readable error message
	Cause     error                  // Underlying error that caused this error
	Context   map[string]interface{} // Additional contextual information
	Operation string                 // The operation that failed
}

// Error implements the error interface
func (e *ArtifactError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *ArtifactError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error code
func (e *ArtifactError) Is(target error) bool {
	if t, ok := target.(*ArtifactError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithContext adds context information to the error
func (e *ArtifactError) WithContext(key string, value interface{}) *ArtifactError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewArtifactError creates a new standardized error
func NewArtifactError(code, message string, cause error) *ArtifactError {
	return &ArtifactError{
		Code:    code,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewArtifactErrorf creates a new standardized error with formatted message
func NewArtifactErrorf(code string, cause error, format string, args ...interface{}) *ArtifactError {
	return &ArtifactError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// System errors
func ErrGitNotFound(cause error) *ArtifactError {
	return NewArtifactError(ErrCodeGitNotFound, "git is not available in PATH", cause)
}

func ErrFileSystem(operation string, cause error) *ArtifactError {
	return NewArtifactErrorf(ErrCodeFileSystem, cause, "file system operation failed: %s", operation).
		WithContext("operation", operation)
}

func ErrFileNotFound(path string) *ArtifactError {
	return NewArtifactErrorf(ErrCodeFileSystem, nil, "file does not exist: %s", path).
		WithContext("path", path)
}

// Configuration errors
func ErrConfigInvalid(key, reason string) *ArtifactError {
	return NewArtifactErrorf(ErrCodeConfigInvalid, nil, "invalid %s: %s", key, reason).
		WithContext("key", key).
		WithContext("reason", reason)
}

func ErrConfigMissing(key string) *ArtifactError {
	return NewArtifactErrorf(ErrCodeConfigMissing, nil, "missing required %s", key).
		WithContext("key", key)
}

func ErrInvalidMode(mode string, valid []string) *ArtifactError {
	return NewArtifactErrorf(ErrCodeInvalidMode, nil, "invalid mode %q: valid modes are %s", mode, strings.Join(valid, ", ")).
		WithContext("mode", mode)
}

func ErrInvalidBranchName(name, reason string) *ArtifactError {
	return NewArtifactErrorf(ErrCodeInvalidBranchName, nil, "invalid branch name %q: %s", name, reason).
		WithContext("branch", name).
		WithContext("reason", reason)
}

func ErrInvalidRemote(remote string) *ArtifactError {
	return NewArtifactErrorf(ErrCodeInvalidRemote, nil, "invalid remote repository %q: not an existing path or a valid remote URI", remote).
		WithContext("remote", remote)
}

func ErrNotImplemented(feature string) *ArtifactError {
	return NewArtifactErrorf(ErrCodeNotImplemented, nil, "%s is not implemented", feature).
		WithContext("feature", feature)
}

// Repository state errors
func ErrBranchNotFound(commit string) *ArtifactError {
	return NewArtifactErrorf(ErrCodeBranchNotFound, nil, "Unable to determine source branch. Current commit: %s", commit).
		WithContext("commit", commit)
}

// Git operation errors
func ErrGitOperation(operation string, cause error) *ArtifactError {
	return NewArtifactErrorf(ErrCodeGitOperation, cause, "git %s failed", operation).
		WithContext("operation", operation)
}

func ErrPushConflict(branch string, cause error) *ArtifactError {
	return NewArtifactErrorf(ErrCodePushConflict, cause, "push to %s was rejected by the remote", branch).
		WithContext("branch", branch)
}

// Helper function to check if an error is a specific artifact error
func IsArtifactError(err error, code string) bool {
	var artifactErr *ArtifactError
	if errors.As(err, &artifactErr) {
		return artifactErr.Code == code
	}
	return false
}

// IsConfigurationError reports whether err was raised while validating input.
func IsConfigurationError(err error) bool {
	return configurationCodes[GetErrorCode(err)]
}

// Helper function to get artifact error code from any error
func GetErrorCode(err error) string {
	var artifactErr *ArtifactError
	if errors.As(err, &artifactErr) {
		return artifactErr.Code
	}
	return ""
}

// Helper function to get error context
func GetErrorContext(err error) map[string]interface{} {
	var artifactErr *ArtifactError
	if errors.As(err, &artifactErr) {
		return artifactErr.Context
	}
	return nil
}
