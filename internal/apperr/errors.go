// Package apperr defines the typed error taxonomy shared by the
// allocation workflows.  Higher layers distinguish three failure
// classes: validation failures that must reach the caller with a
// human-readable reason and are never retried, not-found failures for
// unknown entities, and transient persistence conflicts that the
// submission workflow may retry.  Retryability is expressed as a
// marker interface so the retry policy never inspects driver-specific
// error codes.
package apperr

import (
	"errors"
	"fmt"
)

// ValidationError signals bad input or an unmet business rule, such as
// a duplicate request, an exceeded room capacity, a gender mismatch or
// an insufficient compatibility range.  The reason is safe to show to
// the caller.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Validation builds a ValidationError from a format string.
func Validation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError signals that a referenced resident, room or request
// does not exist.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

// NotFound builds a NotFoundError for the named resource.
func NotFound(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// TransientError wraps a retryable conflict reported by the
// persistence layer, such as a deadlock or a lock wait timeout.  The
// wrapped error is preserved for logging.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string   { return "transient conflict: " + e.Err.Error() }
func (e *TransientError) Unwrap() error   { return e.Err }
func (e *TransientError) Retryable() bool { return true }

// Transient wraps err as a retryable conflict.  A nil err is returned
// unchanged.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &TransientError{Err: err}
}

// retryable is the marker satisfied by errors that may be safely
// retried after backing off.
type retryable interface {
	Retryable() bool
}

// IsRetryable reports whether err (or anything it wraps) carries the
// Retryable marker and answers true.
func IsRetryable(err error) bool {
	var r retryable
	return errors.As(err, &r) && r.Retryable()
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var n *NotFoundError
	return errors.As(err, &n)
}
