// SPDX-License-Identifier: MPL-2.0

// Package fspath resolves user-supplied paths against an explicit base
// directory instead of the process working directory.
package fspath

import (
	"os"
	"path/filepath"
)

// Resolve returns p joined onto base when p is relative and base is set,
// and p unchanged otherwise. The result is cleaned.
func Resolve(p, base string) string {
	if p == "" {
		return ""
	}
	if !filepath.IsAbs(p) && base != "" {
		p = filepath.Join(base, p)
	}
	return filepath.Clean(p)
}

// IsRegularFile reports whether p, resolved against base, names an existing
// regular file. Symlinks are followed.
func IsRegularFile(p, base string) bool {
	if p == "" {
		return false
	}
	info, err := os.Stat(Resolve(p, base))
	return err == nil && info.Mode().IsRegular()
}
