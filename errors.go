package redactpdf

import (
	"errors"

	"github.com/coregx/redactpdf/internal/interp"
)

// ErrNoContent is returned when a Page has an empty Content buffer.
var ErrNoContent = errors.New("redactpdf: page has no content stream")

// IsCancelled returns true if err indicates the operation was cancelled
// via its context. RedactPage and ListOperations wrap
// internal/interp.ErrCancelled, not a redactpdf-local sentinel, so callers
// have one predicate to check regardless of which stage raised it.
func IsCancelled(err error) bool {
	return errors.Is(err, interp.ErrCancelled)
}

// IsUnbalancedState returns true if err indicates the page's content
// stream had unrecoverable q/Q or BT/ET nesting.
func IsUnbalancedState(err error) bool {
	return errors.Is(err, interp.ErrUnbalancedState)
}
