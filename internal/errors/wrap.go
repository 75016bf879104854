package errors

import (
	"errors"
	"fmt"
)

// Report whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Find the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Join combines errs, dropping nils. It returns nil when every error is nil.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// WithOperation records the operation that produced err. Errors that are
// not ArtifactErrors are wrapped as git operation failures.
func WithOperation(err error, operation string) error {
	if err == nil {
		return nil
	}

	var artifactErr *ArtifactError
	if As(err, &artifactErr) {
		artifactErr.Operation = operation
		return artifactErr
	}

	return NewArtifactError(ErrCodeGitOperation, fmt.Sprintf("operation %s failed", operation), err).
		WithContext("operation", operation)
}
