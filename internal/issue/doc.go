// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError records the operation, the path, and remediation hints for
// failures surfaced by configuration discovery and formatting. The catalog in
// issue.go holds Markdown guides the CLI renders in verbose mode.
package issue
