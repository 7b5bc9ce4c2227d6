// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	// StatusSuccess means the buffer was formatted without any error.
	StatusSuccess ExitCode = 0
	// StatusOperationalError means I/O or filesystem access failed.
	StatusOperationalError ExitCode = 1
	// StatusParsingError means the buffer or the configuration file could not be parsed.
	StatusParsingError ExitCode = 2
	// StatusFormattingError means formatting completed but the result was flagged.
	StatusFormattingError ExitCode = 3
	// StatusUsageError is the CLI-only status for argument parsing failures.
	// It is the unsigned byte form of -1.
	StatusUsageError ExitCode = 255
)

// ErrInvalidExitCode is the sentinel error wrapped by InvalidExitCodeError.
var ErrInvalidExitCode = errors.New("invalid exit code")

type (
	// ExitCode is the status returned by a formatting call, both as a process
	// exit status and as the integer handed back across the C boundary.
	ExitCode int

	// InvalidExitCodeError is returned when an ExitCode is outside the
	// valid range (0-255).
	InvalidExitCodeError struct {
		Value ExitCode
	}
)

// Error implements the error interface.
func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("invalid exit code %d (must be in range 0-255)", e.Value)
}

// Unwrap returns ErrInvalidExitCode so callers can use errors.Is for programmatic detection.
func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// Validate returns an error if the ExitCode is outside the valid range (0-255).
func (c ExitCode) Validate() error {
	if c < 0 || c > 255 {
		return &InvalidExitCodeError{Value: c}
	}
	return nil
}

// IsSuccess returns true if the exit code indicates a clean formatting run.
func (c ExitCode) IsSuccess() bool { return c == StatusSuccess }

// Describe returns a short label for the status, suitable for log fields.
func (c ExitCode) Describe() string {
	switch c {
	case StatusSuccess:
		return "success"
	case StatusOperationalError:
		return "operational error"
	case StatusParsingError:
		return "parsing error"
	case StatusFormattingError:
		return "formatting error"
	case StatusUsageError:
		return "usage error"
	default:
		return "exit status " + c.String()
	}
}

// String returns the decimal string representation of the ExitCode.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }
