// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"path/filepath"

	"github.com/fmtbridge/fmtbridge/internal/app/execute"
	"github.com/fmtbridge/fmtbridge/internal/formatter"
	"github.com/fmtbridge/fmtbridge/internal/issue"
	"github.com/fmtbridge/fmtbridge/pkg/fspath"
	"github.com/fmtbridge/fmtbridge/pkg/types"
)

const stdinName = "<stdin>"

// input is the buffer to format and where it came from.
type input struct {
	name string
	text string
	dir  string
}

func runFormat(ctx context.Context, app *App, flags *rootFlags, args []string) error {
	wd, err := app.getwd()
	if err != nil {
		return reportExit(app, flags, types.StatusOperationalError,
			issue.WrapWithContext(err, "read working directory", ""))
	}

	in, err := readInput(app, args, wd)
	if err != nil {
		return reportExit(app, flags, types.StatusOperationalError, err)
	}

	logger := app.newLogger(flags.verbose)
	orchestrator := execute.NewOrchestrator(app.Config, formatter.New(logger), logger, app.stdout, execute.AbortOnConfigError)
	res := orchestrator.Run(ctx, execute.Request{
		Buffer:       in.text,
		ConfigPath:   flags.configPath,
		SearchRoot:   in.dir,
		WorkDir:      wd,
		InputName:    in.name,
		InputDir:     in.dir,
		SkipChildren: flags.skipChildren,
	})

	if res.ConfigErr != nil {
		reportError(app.stderr, res.ConfigErr, flags.verbose)
	}
	if flags.verbose {
		renderIssueGuides(app.stderr, append([]error{res.ConfigErr}, summaryErrors(res.Summary)...)...)
	}

	if !res.Code.IsSuccess() {
		return &ExitError{Code: res.Code}
	}
	return nil
}

// readInput reads the positional argument, or standard input when it is
// absent or "-". Child scripts of standard input resolve against wd.
func readInput(app *App, args []string, wd string) (input, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(app.stdin)
		if err != nil {
			return input{}, issue.WrapWithContext(err, "read standard input", stdinName)
		}
		return input{name: stdinName, text: string(data), dir: wd}, nil
	}

	path := fspath.Resolve(args[0], wd)
	data, err := app.readFile(path)
	if err != nil {
		return input{}, issue.NewErrorContext().
			WithOperation("read script").
			WithResource(args[0]).
			WithSuggestion("Check that the file exists and is readable").
			Wrap(err).
			BuildError()
	}
	return input{name: args[0], text: string(data), dir: filepath.Dir(path)}, nil
}

// reportExit reports err and returns the ExitError for code.
func reportExit(app *App, flags *rootFlags, code types.ExitCode, err error) error {
	reportError(app.stderr, err, flags.verbose)
	if flags.verbose {
		renderIssueGuides(app.stderr, err)
	}
	return &ExitError{Code: code, Err: err}
}
