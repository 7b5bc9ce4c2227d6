// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
)

const (
	// LanguageBash parses Bash, the default dialect.
	LanguageBash Language = "bash"
	// LanguagePOSIX parses POSIX shell only.
	LanguagePOSIX Language = "posix"
	// LanguageMksh parses the MirBSD Korn shell.
	LanguageMksh Language = "mksh"
	// LanguageBats parses Bats test files.
	LanguageBats Language = "bats"

	// WriteModeOverwrite writes the result back to the input's source.
	// In-memory inputs have no source, so the formatter refuses it.
	WriteModeOverwrite WriteMode = "overwrite"
	// WriteModePlain writes the formatted text to the output stream.
	WriteModePlain WriteMode = "plain"
	// WriteModeDisplay writes the input name, a blank line, then the formatted text.
	WriteModeDisplay WriteMode = "display"

	// MaxIndent is the largest accepted indent width.
	MaxIndent = 16
)

var (
	// ErrInvalidLanguage is returned when a Language value is not recognized.
	ErrInvalidLanguage = errors.New("invalid language")
	// ErrInvalidWriteMode is returned when a WriteMode value is not recognized.
	ErrInvalidWriteMode = errors.New("invalid write mode")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// Language selects the shell dialect used to parse the buffer.
	Language string

	// InvalidLanguageError is returned when a Language value is not recognized.
	// It wraps ErrInvalidLanguage for errors.Is() compatibility.
	InvalidLanguageError struct {
		Value Language
	}

	// WriteMode selects where the formatted text goes.
	WriteMode string

	// InvalidWriteModeError is returned when a WriteMode value is not recognized.
	// It wraps ErrInvalidWriteMode for errors.Is() compatibility.
	InvalidWriteModeError struct {
		Value WriteMode
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the effective settings for one formatting call.
	// Values are copied, never shared: each call builds its own.
	Config struct {
		// Indent is the number of spaces per level; 0 indents with tabs.
		Indent int `json:"indent" mapstructure:"indent" toml:"indent"`
		// BinaryNextLine lets binary operators like && and | start a line.
		BinaryNextLine bool `json:"binary_next_line" mapstructure:"binary_next_line" toml:"binary_next_line"`
		// SwitchCaseIndent indents case clauses inside case statements.
		SwitchCaseIndent bool `json:"switch_case_indent" mapstructure:"switch_case_indent" toml:"switch_case_indent"`
		// SpaceRedirects puts a space after redirect operators.
		SpaceRedirects bool `json:"space_redirects" mapstructure:"space_redirects" toml:"space_redirects"`
		// FunctionNextLine places a function's opening brace on the next line.
		FunctionNextLine bool `json:"function_next_line" mapstructure:"function_next_line" toml:"function_next_line"`
		// Minify removes comments and redundant whitespace.
		Minify bool `json:"minify" mapstructure:"minify" toml:"minify"`
		// SingleLine joins statements onto as few lines as possible.
		SingleLine bool `json:"single_line" mapstructure:"single_line" toml:"single_line"`
		// Language is the shell dialect.
		Language Language `json:"language" mapstructure:"language" toml:"language"`
		// MaxWidth is the line width checked when ErrorOnLineOverflow is set.
		MaxWidth int `json:"max_width" mapstructure:"max_width" toml:"max_width"`
		// ErrorOnLineOverflow reports lines wider than MaxWidth as formatting errors.
		ErrorOnLineOverflow bool `json:"error_on_line_overflow" mapstructure:"error_on_line_overflow" toml:"error_on_line_overflow"`
		// WriteMode selects the output destination.
		WriteMode WriteMode `json:"write_mode" mapstructure:"write_mode" toml:"write_mode"`
		// SkipChildren disables checking of sourced child scripts.
		SkipChildren bool `json:"skip_children" mapstructure:"skip_children" toml:"skip_children"`
		// Verbose enables debug logging inside the formatter.
		Verbose bool `json:"verbose" mapstructure:"verbose" toml:"verbose"`
	}

	// Overrides are the per-call settings applied by Finalize.
	Overrides struct {
		// SkipChildren requests that sourced scripts are not checked.
		SkipChildren bool
		// Embedded marks a call coming through the C-ABI bridge.
		Embedded bool
	}
)

// DefaultConfig returns the settings used when no fmtbridge.toml is found.
func DefaultConfig() Config {
	return Config{
		Indent:    0,
		Language:  LanguageBash,
		MaxWidth:  100,
		WriteMode: WriteModeOverwrite,
	}
}

// Finalize returns a copy of c with the invariant settings of a formatting
// call applied: output is always written in plain mode, children are skipped
// when requested, and verbosity is off for embedded callers. c is unchanged.
func (c Config) Finalize(o Overrides) Config {
	out := c
	out.WriteMode = WriteModePlain
	if o.SkipChildren {
		out.SkipChildren = true
	}
	if o.Embedded {
		out.Verbose = false
	}
	return out
}

// Validate checks field values that the schema also enforces, for configs
// assembled in code rather than decoded from a file.
func (c Config) Validate() error {
	var errs []error
	if c.Indent < 0 || c.Indent > MaxIndent {
		errs = append(errs, fmt.Errorf("indent %d out of range 0-%d", c.Indent, MaxIndent))
	}
	if c.MaxWidth <= 0 {
		errs = append(errs, fmt.Errorf("max_width must be positive, got %d", c.MaxWidth))
	}
	if err := c.Language.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.WriteMode.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s): %v", len(e.FieldErrors), errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// String returns the string representation of the Language.
func (l Language) String() string { return string(l) }

// Validate returns an error if the Language is not one of the defined values.
func (l Language) Validate() error {
	switch l {
	case LanguageBash, LanguagePOSIX, LanguageMksh, LanguageBats:
		return nil
	default:
		return &InvalidLanguageError{Value: l}
	}
}

// Error implements the error interface for InvalidLanguageError.
func (e *InvalidLanguageError) Error() string {
	return fmt.Sprintf("invalid language %q (valid: bash, posix, mksh, bats)", e.Value)
}

// Unwrap returns ErrInvalidLanguage for errors.Is() compatibility.
func (e *InvalidLanguageError) Unwrap() error { return ErrInvalidLanguage }

// String returns the string representation of the WriteMode.
func (m WriteMode) String() string { return string(m) }

// Validate returns an error if the WriteMode is not one of the defined values.
func (m WriteMode) Validate() error {
	switch m {
	case WriteModeOverwrite, WriteModePlain, WriteModeDisplay:
		return nil
	default:
		return &InvalidWriteModeError{Value: m}
	}
}

// Error implements the error interface for InvalidWriteModeError.
func (e *InvalidWriteModeError) Error() string {
	return fmt.Sprintf("invalid write mode %q (valid: overwrite, plain, display)", e.Value)
}

// Unwrap returns ErrInvalidWriteMode for errors.Is() compatibility.
func (e *InvalidWriteModeError) Unwrap() error { return ErrInvalidWriteMode }
