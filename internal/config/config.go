// SPDX-License-Identifier: MPL-2.0

package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fmtbridge/fmtbridge/internal/discovery"
	"github.com/fmtbridge/fmtbridge/internal/issue"
	"github.com/fmtbridge/fmtbridge/pkg/cueutil"
	"github.com/fmtbridge/fmtbridge/pkg/fspath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

//go:embed config_schema.cue
var configSchema string

var (
	// ErrConfigRead is the sentinel error wrapped by ReadError.
	ErrConfigRead = errors.New("configuration file could not be read")
	// ErrConfigParse is the sentinel error wrapped by ParseError.
	ErrConfigParse = errors.New("configuration file could not be parsed")

	// readFile is swapped in tests to inject I/O failures.
	readFile = os.ReadFile
)

type (
	// Resolved is the outcome of configuration resolution.
	Resolved struct {
		// Config is the parsed configuration, or DefaultConfig() when Path is empty.
		Config Config
		// Path is the file the configuration came from; empty when none was found.
		Path string
	}

	// ReadError reports that a located configuration file could not be read.
	// It is an operational failure, never downgraded to defaults.
	ReadError struct {
		Path string
		Err  error
	}

	// ParseError reports malformed configuration content. Line and Column
	// are 1-based and zero when the position is unknown.
	ParseError struct {
		Path   string
		Line   int
		Column int
		Err    error
	}
)

// Error implements the error interface.
func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

// Unwrap exposes both ErrConfigRead and the underlying I/O error.
func (e *ReadError) Unwrap() []error { return []error{ErrConfigRead, e.Err} }

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s:%d:%d: %v", e.Path, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

// Unwrap exposes both ErrConfigParse and the underlying decoder error.
func (e *ParseError) Unwrap() []error { return []error{ErrConfigParse, e.Err} }

// Parse decodes the content of a configuration file. The TOML is decoded
// into a generic map, checked against the embedded CUE schema, then layered
// over the defaults with viper.
func Parse(data []byte, path string) (Config, error) {
	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return Config{}, newParseError(path, 0, 0, err)
	}

	raw := map[string]any{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			line, col := decodeErr.Position()
			return Config{}, newParseError(path, line, col, err)
		}
		return Config{}, newParseError(path, 0, 0, err)
	}

	if err := cueutil.ValidateMap(configSchema, "#Config", raw, path); err != nil {
		return Config{}, newParseError(path, 0, 0, err)
	}

	v := newViper()
	if err := v.MergeConfigMap(raw); err != nil {
		return Config{}, newParseError(path, 0, 0, fmt.Errorf("failed to merge config: %w", err))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, newParseError(path, 0, 0, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, newParseError(path, 0, 0, err)
	}

	return cfg, nil
}

// Resolve searches dir and its ancestors for fmtbridge.toml and parses the
// nearest one. When none exists it returns DefaultConfig() with an empty
// Path and no error. A relative dir is resolved against workDir.
func Resolve(dir, workDir string) (Resolved, error) {
	root, err := discovery.NewSearchPath(dir, workDir)
	if err != nil {
		return Resolved{}, err
	}

	path, found, err := discovery.FindProjectFile(root)
	if err != nil {
		return Resolved{}, err
	}
	if !found {
		return Resolved{Config: DefaultConfig()}, nil
	}

	data, err := readFile(path)
	if err != nil {
		return Resolved{}, issue.NewErrorContext().
			WithOperation("read configuration file").
			WithResource(path).
			WithIssue(issue.ConfigReadFailedId).
			WithSuggestion("Check the file permissions").
			Wrap(&ReadError{Path: path, Err: err}).
			BuildError()
	}

	cfg, err := Parse(data, path)
	if err != nil {
		return Resolved{}, err
	}

	return Resolved{Config: cfg, Path: path}, nil
}

// ResolveWithFallback applies the two-tier priority: the explicit location
// is searched first and a file found from it wins outright; only when it
// yields nothing is the fallback root searched. An explicit path naming a
// file is replaced by its parent directory. An empty explicit path skips
// the first tier.
func ResolveWithFallback(explicit, fallback, workDir string) (Resolved, error) {
	if explicit != "" {
		r, err := Resolve(NormalizeSearchRoot(explicit, workDir), workDir)
		if err != nil {
			return Resolved{}, err
		}
		if r.Path != "" {
			return r, nil
		}
	}
	return Resolve(fallback, workDir)
}

// NormalizeSearchRoot returns the parent directory of path when path names
// an existing regular file, and path unchanged otherwise. A relative path is
// checked against workDir but returned in its original relative form.
// Applying it twice gives the same result as applying it once.
func NormalizeSearchRoot(path, workDir string) string {
	if !fspath.IsRegularFile(path, workDir) {
		return path
	}
	return filepath.Dir(path)
}

// MarshalTOML renders c as a complete fmtbridge.toml document.
func (c Config) MarshalTOML() ([]byte, error) {
	return toml.Marshal(c)
}

func newViper() *viper.Viper {
	v := viper.New()
	defaults := DefaultConfig()
	v.SetDefault("indent", defaults.Indent)
	v.SetDefault("binary_next_line", defaults.BinaryNextLine)
	v.SetDefault("switch_case_indent", defaults.SwitchCaseIndent)
	v.SetDefault("space_redirects", defaults.SpaceRedirects)
	v.SetDefault("function_next_line", defaults.FunctionNextLine)
	v.SetDefault("minify", defaults.Minify)
	v.SetDefault("single_line", defaults.SingleLine)
	v.SetDefault("language", string(defaults.Language))
	v.SetDefault("max_width", defaults.MaxWidth)
	v.SetDefault("error_on_line_overflow", defaults.ErrorOnLineOverflow)
	v.SetDefault("write_mode", string(defaults.WriteMode))
	v.SetDefault("skip_children", defaults.SkipChildren)
	v.SetDefault("verbose", defaults.Verbose)
	return v
}

func newParseError(path string, line, col int, err error) error {
	return issue.NewErrorContext().
		WithOperation("parse configuration file").
		WithResource(path).
		WithIssue(issue.ConfigParseErrorId).
		WithSuggestion("Run 'fmtbridge config options' to list the recognized options").
		Wrap(&ParseError{Path: path, Line: line, Column: col, Err: err}).
		BuildError()
}
