// SPDX-License-Identifier: MPL-2.0

package formatter

import "golang.org/x/exp/slices"

const (
	// KindOperational marks I/O failures.
	KindOperational Kind = iota + 1
	// KindParsing marks input that is not valid for the configured dialect.
	KindParsing
	// KindFormatting marks a completed run whose result was flagged.
	KindFormatting
)

type (
	// Kind classifies a formatter error.
	Kind int

	// Summary collects the errors of one Run.
	Summary struct {
		errs []Error
	}

	// Error is a single classified formatter error.
	Error struct {
		Kind Kind
		Err  error
	}
)

// String returns a short label for the kind.
func (k Kind) String() string {
	switch k {
	case KindOperational:
		return "operational"
	case KindParsing:
		return "parsing"
	case KindFormatting:
		return "formatting"
	default:
		return "unknown"
	}
}

// Error implements the error interface.
func (e Error) Error() string { return e.Kind.String() + ": " + e.Err.Error() }

// Unwrap returns the underlying error.
func (e Error) Unwrap() error { return e.Err }

func (s Summary) has(kind Kind) bool {
	return slices.ContainsFunc(s.errs, func(e Error) bool { return e.Kind == kind })
}

// HasOperationalErrors reports whether any I/O failure was recorded.
func (s Summary) HasOperationalErrors() bool { return s.has(KindOperational) }

// HasParsingErrors reports whether any parse failure was recorded.
func (s Summary) HasParsingErrors() bool { return s.has(KindParsing) }

// HasFormattingErrors reports whether the result was flagged.
func (s Summary) HasFormattingErrors() bool { return s.has(KindFormatting) }

// HasNoErrors reports whether the run was clean.
func (s Summary) HasNoErrors() bool { return len(s.errs) == 0 }

// Errors returns the recorded errors in the order they occurred.
func (s Summary) Errors() []Error { return slices.Clone(s.errs) }

// NewSummary builds a Summary from already classified errors, kept in the
// given order. Run returns its results through it; runners that stand in for
// the formatter use it too.
func NewSummary(errs ...Error) Summary {
	return Summary{errs: slices.Clone(errs)}
}
