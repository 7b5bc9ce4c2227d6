// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fmtbridge/fmtbridge/internal/issue"
)

// ProjectFileName is the name of the configuration file searched for in every
// ancestor of the search root.
const ProjectFileName = "fmtbridge.toml"

var (
	// ErrInvalidSearchPath is the sentinel error wrapped by InvalidSearchPathError.
	ErrInvalidSearchPath = errors.New("invalid search path")

	// stat is swapped in tests to inject filesystem failures.
	stat = os.Stat
)

type (
	// SearchPath is an absolute, canonical path to an existing directory.
	// The zero value is not usable; build one with NewSearchPath.
	SearchPath struct {
		dir string
	}

	// InvalidSearchPathError is returned when a search root cannot be turned
	// into a SearchPath.
	InvalidSearchPathError struct {
		Path   string
		Reason string
	}
)

// Error implements the error interface.
func (e *InvalidSearchPathError) Error() string {
	return fmt.Sprintf("invalid search path %q: %s", e.Path, e.Reason)
}

// Unwrap returns ErrInvalidSearchPath for errors.Is() compatibility.
func (e *InvalidSearchPathError) Unwrap() error { return ErrInvalidSearchPath }

// NewSearchPath resolves dir into a SearchPath. A relative dir is joined onto
// workDir, which must itself be absolute; the process working directory is
// never consulted. Symlinks and "."/".." segments are resolved here, once.
func NewSearchPath(dir, workDir string) (SearchPath, error) {
	if dir == "" {
		return SearchPath{}, invalidSearchPath(dir, "path is empty", nil)
	}

	joined := dir
	if !filepath.IsAbs(joined) {
		if !filepath.IsAbs(workDir) {
			return SearchPath{}, invalidSearchPath(dir, fmt.Sprintf("working directory %q is not absolute", workDir), nil)
		}
		joined = filepath.Join(workDir, joined)
	}

	canonical, err := filepath.EvalSymlinks(joined)
	if err != nil {
		return SearchPath{}, invalidSearchPath(dir, "cannot be canonicalized", err)
	}

	info, err := stat(canonical)
	if err != nil {
		return SearchPath{}, invalidSearchPath(dir, "cannot be inspected", err)
	}
	if !info.IsDir() {
		return SearchPath{}, invalidSearchPath(dir, "not a directory", nil)
	}

	return SearchPath{dir: canonical}, nil
}

// String returns the canonical directory.
func (p SearchPath) String() string { return p.dir }

// FindProjectFile walks from p up to the filesystem root and returns the path
// of the nearest regular file named ProjectFileName. found is false when no
// ancestor holds one. A directory carrying that name is skipped. Any stat
// failure other than fs.ErrNotExist aborts the walk and is returned.
func FindProjectFile(p SearchPath) (path string, found bool, err error) {
	if p.dir == "" {
		return "", false, invalidSearchPath("", "search path was not built with NewSearchPath", nil)
	}

	current := p.dir
	for {
		candidate := filepath.Join(current, ProjectFileName)
		info, statErr := stat(candidate)
		switch {
		case statErr == nil && info.Mode().IsRegular():
			return candidate, true, nil
		case statErr != nil && !errors.Is(statErr, fs.ErrNotExist):
			return "", false, issue.NewErrorContext().
				WithOperation("search for " + ProjectFileName).
				WithResource(candidate).
				WithIssue(issue.ConfigSearchFailedId).
				WithSuggestion("Check that every ancestor of the search root is readable").
				Wrap(statErr).
				BuildError()
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", false, nil
		}
		current = parent
	}
}

func invalidSearchPath(path, reason string, cause error) error {
	ctx := issue.NewErrorContext().
		WithOperation("resolve search root").
		WithResource(path).
		WithIssue(issue.InvalidSearchRootId)
	if cause != nil {
		return ctx.Wrap(fmt.Errorf("%w: %w", &InvalidSearchPathError{Path: path, Reason: reason}, cause)).BuildError()
	}
	return ctx.Wrap(&InvalidSearchPathError{Path: path, Reason: reason}).BuildError()
}
