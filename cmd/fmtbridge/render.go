// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/fmtbridge/fmtbridge/internal/formatter"
	"github.com/fmtbridge/fmtbridge/internal/issue"

	"github.com/charmbracelet/glamour"
)

// guideStyle is the glamour style used for markdown output.
const guideStyle = "dark"

// renderMarkdown is swapped in tests to keep output free of ANSI sequences.
var renderMarkdown = glamour.Render

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}

// reportError writes err to w with an error prefix.
func reportError(w io.Writer, err error, verbose bool) {
	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
}

// renderIssueGuides writes the catalog guide of every distinct issue found in
// errs. Errors without an issue are skipped.
func renderIssueGuides(w io.Writer, errs ...error) {
	seen := map[issue.Id]bool{}
	for _, err := range errs {
		id, ok := issue.IssueOf(err)
		if !ok || seen[id] {
			continue
		}
		seen[id] = true

		guide := issue.Get(id)
		if guide == nil {
			continue
		}
		rendered, err := guide.Render(guideStyle)
		if err != nil {
			rendered = string(guide.MarkdownMsg())
		}
		fmt.Fprint(w, rendered)
	}
}

// summaryErrors flattens the formatter errors for guide rendering.
func summaryErrors(s formatter.Summary) []error {
	errs := s.Errors()
	out := make([]error, len(errs))
	for i, e := range errs {
		out[i] = e
	}
	return out
}
