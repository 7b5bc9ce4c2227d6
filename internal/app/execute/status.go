// SPDX-License-Identifier: MPL-2.0

package execute

import (
	"errors"

	"github.com/fmtbridge/fmtbridge/internal/config"
	"github.com/fmtbridge/fmtbridge/internal/formatter"
	"github.com/fmtbridge/fmtbridge/pkg/types"
)

// StatusFor maps a formatter outcome to a status code. The first match wins:
// operational, then parsing, then formatting.
func StatusFor(s formatter.Summary) types.ExitCode {
	switch {
	case s.HasOperationalErrors():
		return types.StatusOperationalError
	case s.HasParsingErrors():
		return types.StatusParsingError
	case s.HasFormattingErrors():
		return types.StatusFormattingError
	default:
		return types.StatusSuccess
	}
}

// StatusForConfigError maps a configuration resolution error. Malformed
// content is a parsing error; anything else is operational.
func StatusForConfigError(err error) types.ExitCode {
	if errors.Is(err, config.ErrConfigParse) {
		return types.StatusParsingError
	}
	return types.StatusOperationalError
}
