// Package mutate implements the three staging-view mutation handlers:
// update_classifier, update_worker and update_port.
package mutate

import (
	stderrors "errors"

	"github.com/pkg/errors"
)

// ValidationError wraps a precondition failure from one of the mutation
// handlers. The controller-facing message is always the fixed string
// required by the error-handling policy ("error occur"); the wrapped
// cause is for internal logs only.
type ValidationError struct {
	cause error
}

func (e *ValidationError) Error() string { return e.cause.Error() }
func (e *ValidationError) Unwrap() error { return e.cause }

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{cause: errors.Errorf(format, args...)}
}

func wrapValidation(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ValidationError{cause: errors.Wrap(err, msg)}
}

// IsValidation reports whether err originated from a mutation handler's
// precondition check.
func IsValidation(err error) bool {
	var ve *ValidationError
	return stderrors.As(err, &ve)
}
