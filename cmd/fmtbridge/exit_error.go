// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/fmtbridge/fmtbridge/pkg/types"
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE
// handlers. The handler has already reported Err when it returns one.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitCodeFor maps the error returned by the root command to a process exit
// code. Errors that are not ExitErrors come from argument parsing. A code
// that does not fit a process exit status is reported as operational.
func exitCodeFor(err error) types.ExitCode {
	if err == nil {
		return types.StatusSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Code.Validate() != nil {
			return types.StatusOperationalError
		}
		return exitErr.Code
	}
	return types.StatusUsageError
}
