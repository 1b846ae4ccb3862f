// Package diag provides the structured diagnostics and minimal logging
// facility shared by the content-stream pipeline (internal/contentstream,
// internal/interp, internal/redact, internal/cswriter).
//
// Recoverable problems are collected as Diagnostic records rather than
// returned as errors, so one malformed operator does not abort an entire
// page; only a fatal problem (reported via HasFatal) short-circuits
// processing for that page, per the page-level isolation policy.
package diag

import "fmt"

// Severity classifies how serious a Diagnostic is.
type Severity int

// Recognized severities, ordered least to most serious.
const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
	SeverityFatal
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	case SeverityFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// Kind identifies the category of problem a Diagnostic reports, matching
// the error taxonomy named by the redaction pipeline's design: tokenizer
// failures, unbalanced q/Q or BT/ET nesting, unrecognized operators,
// resources the caller's FontResolver couldn't resolve, malformed
// operands, and a cooperative cancellation signal.
type Kind int

// Recognized diagnostic kinds.
const (
	KindTokenizerError Kind = iota
	KindUnbalancedState
	KindUnknownOperator
	KindResourceNotFound
	KindMalformedOperand
	KindCancelled
	KindInvariantViolated
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindTokenizerError:
		return "TokenizerError"
	case KindUnbalancedState:
		return "UnbalancedState"
	case KindUnknownOperator:
		return "UnknownOperator"
	case KindResourceNotFound:
		return "ResourceNotFound"
	case KindMalformedOperand:
		return "MalformedOperand"
	case KindCancelled:
		return "Cancelled"
	case KindInvariantViolated:
		return "InvariantViolated"
	default:
		return "Unknown"
	}
}

// Diagnostic is one recorded problem, tagged with its byte offset in the
// content stream so a caller can point a user at the exact location.
type Diagnostic struct {
	Severity   Severity
	Kind       Kind
	ByteOffset int
	Message    string
}

// String formats the diagnostic for logs and CLI output.
func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] %s @%d: %s", d.Severity, d.Kind, d.ByteOffset, d.Message)
}

// Diagnostics is an ordered collection of Diagnostic records accumulated
// while processing a single page.
type Diagnostics []Diagnostic

// Add appends a new Diagnostic and returns the updated slice, so callers can
// write `d = d.Add(...)` without holding a pointer receiver.
func (d Diagnostics) Add(sev Severity, kind Kind, offset int, format string, args ...any) Diagnostics {
	return append(d, Diagnostic{
		Severity:   sev,
		Kind:       kind,
		ByteOffset: offset,
		Message:    fmt.Sprintf(format, args...),
	})
}

// HasFatal reports whether any recorded diagnostic is fatal.
func (d Diagnostics) HasFatal() bool {
	for _, entry := range d {
		if entry.Severity == SeverityFatal {
			return true
		}
	}
	return false
}

// Errors returns only the ERROR and FATAL diagnostics.
func (d Diagnostics) Errors() Diagnostics {
	var out Diagnostics
	for _, entry := range d {
		if entry.Severity >= SeverityError {
			out = append(out, entry)
		}
	}
	return out
}

// Warnings returns only the WARNING diagnostics.
func (d Diagnostics) Warnings() Diagnostics {
	var out Diagnostics
	for _, entry := range d {
		if entry.Severity == SeverityWarning {
			out = append(out, entry)
		}
	}
	return out
}
