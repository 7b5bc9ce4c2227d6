// SPDX-License-Identifier: MPL-2.0

// Package execute turns one formatting request into a status code. It
// resolves configuration, applies the finalize step, runs the formatter and
// maps the outcome. Both the CLI and the embedded library call it; they
// differ only in their ConfigErrorPolicy.
package execute
