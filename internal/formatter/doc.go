// SPDX-License-Identifier: MPL-2.0

// Package formatter runs the shell formatter (mvdan.cc/sh/v3/syntax) over an
// in-memory buffer and classifies what went wrong.
//
// Run never returns an error. Every problem is recorded in the Summary under
// one of three kinds: operational (I/O), parsing (the buffer or a sourced
// child script is not valid shell), or formatting (the printed result is not
// stable, overflows the configured width, or a child is not formatted).
package formatter
