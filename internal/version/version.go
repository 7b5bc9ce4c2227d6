// SPDX-License-Identifier: MPL-2.0

// Package version reports the semantic version of the build.
package version

import (
	"fmt"
	"runtime/debug"

	"github.com/Masterminds/semver/v3"
)

// Unknown is reported when no version is available.
const Unknown = "unknown"

var (
	// Version is the semantic version (set via -ldflags).
	Version = ""
	// Commit is the git commit hash (set via -ldflags).
	Commit = Unknown
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = Unknown

	// readBuildInfo is swapped in tests; test binaries report "(devel)".
	readBuildInfo = debug.ReadBuildInfo
)

// Get returns the semantic version of the build without a "v" prefix, or
// Unknown. The ldflags
// value wins when it parses as a semantic version; otherwise the main module
// version recorded by the Go toolchain is used.
func Get() string {
	if v, ok := parse(Version); ok {
		return v
	}
	if info, ok := readBuildInfo(); ok {
		if v, ok := parse(info.Main.Version); ok {
			return v
		}
	}
	return Unknown
}

// Long returns the version with commit and build date for display.
func Long() string {
	v := Get()
	if v == Unknown {
		return "unknown (built from source)"
	}
	return fmt.Sprintf("v%s (commit: %s, built: %s)", v, Commit, BuildDate)
}

// parse normalizes s to bare semantic version form.
func parse(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	sv, err := semver.NewVersion(s)
	if err != nil {
		return "", false
	}
	return sv.String(), true
}
