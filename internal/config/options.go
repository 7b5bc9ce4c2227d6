// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"strings"
)

// option documents one recognized fmtbridge.toml key.
type option struct {
	key         string
	typ         string
	def         string
	description string
}

// options lists the recognized keys in documentation order.
var options = []option{
	{"indent", "integer 0..16", "0", "Spaces per indentation level; 0 indents with tabs"},
	{"binary_next_line", "boolean", "false", "Binary operators such as `&&` and `|` may start a line"},
	{"switch_case_indent", "boolean", "false", "Indent `case` clauses inside `case` statements"},
	{"space_redirects", "boolean", "false", "Put a space after redirect operators"},
	{"function_next_line", "boolean", "false", "Place the opening brace of a function on the next line"},
	{"minify", "boolean", "false", "Minify the program; comments are dropped"},
	{"single_line", "boolean", "false", "Join statements onto a single line where possible"},
	{"language", "`bash`, `posix`, `mksh` or `bats`", "`bash`", "Shell dialect used to parse the input"},
	{"max_width", "positive integer", "100", "Line width checked by `error_on_line_overflow`"},
	{"error_on_line_overflow", "boolean", "false", "Report lines wider than `max_width` as formatting errors"},
	{"write_mode", "`plain`, `display` or `overwrite`", "`overwrite`", "Output mode; always forced to `plain`"},
	{"skip_children", "boolean", "false", "Do not check scripts pulled in with `source` or `.`"},
	{"verbose", "boolean", "false", "Debug logging from the formatter; ignored by the library"},
}

// OptionsMarkdown renders the recognized keys as a markdown document.
func OptionsMarkdown() string {
	var b strings.Builder
	b.WriteString("# fmtbridge.toml options\n\n")
	b.WriteString("The nearest `fmtbridge.toml` in the search root or its ancestors is used. ")
	b.WriteString("Unknown keys and values of the wrong type are rejected.\n\n")
	b.WriteString("| Key | Type | Default | Description |\n")
	b.WriteString("|-----|------|---------|-------------|\n")
	for _, o := range options {
		fmt.Fprintf(&b, "| `%s` | %s | %s | %s |\n", o.key, o.typ, o.def, o.description)
	}
	return b.String()
}
