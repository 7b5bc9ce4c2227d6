// SPDX-License-Identifier: MPL-2.0

// Package discovery locates the project configuration file by walking up the
// ancestor chain of a search root.
//
// The search root is canonicalized exactly once, when a SearchPath is built.
// The walk then probes one candidate per ancestor and stops at the first
// regular file named fmtbridge.toml, at the filesystem root, or at the first
// filesystem error other than "does not exist".
package discovery
