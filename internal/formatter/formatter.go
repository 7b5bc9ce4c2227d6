// SPDX-License-Identifier: MPL-2.0

package formatter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/fmtbridge/fmtbridge/internal/config"
	"github.com/fmtbridge/fmtbridge/internal/issue"
	"github.com/fmtbridge/fmtbridge/pkg/fspath"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/syntax"
)

var (
	// ErrNotIdempotent is recorded when formatting the output again changes it.
	ErrNotIdempotent = errors.New("formatting is not idempotent")
	// ErrLineOverflow is recorded when a formatted line exceeds max_width.
	ErrLineOverflow = errors.New("line exceeds max_width")
	// ErrNotFormatted is recorded when a sourced child script is not formatted.
	ErrNotFormatted = errors.New("script is not formatted")
	// ErrNoSource is recorded when overwrite is requested for in-memory input.
	ErrNoSource = errors.New("input has no source file to overwrite")

	// readChild is swapped in tests to inject I/O failures.
	readChild = os.ReadFile
)

type (
	// Input is one buffer to format.
	Input struct {
		// Name labels the buffer in messages and in display mode.
		Name string
		// Text is the shell source.
		Text string
		// Dir resolves relative paths of sourced child scripts. Child
		// scripts are not checked when it is empty.
		Dir string
	}

	// Formatter formats shell buffers.
	Formatter struct {
		logger *log.Logger
	}
)

// New creates a Formatter that logs through logger. A nil logger discards.
func New(logger *log.Logger) *Formatter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Formatter{logger: logger}
}

// Run formats in with cfg and writes the result to out according to
// cfg.WriteMode. Output is written even when formatting errors are recorded;
// nothing is written after a parsing or operational error.
func (f *Formatter) Run(ctx context.Context, in Input, cfg config.Config, out io.Writer) Summary {
	logger := f.logger.With("input", in.Name)
	if cfg.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	if err := ctx.Err(); err != nil {
		return NewSummary(Error{Kind: KindOperational, Err: err})
	}
	if cfg.WriteMode == config.WriteModeOverwrite {
		return NewSummary(Error{Kind: KindOperational, Err: issue.WrapWithContext(ErrNoSource, "write formatted output", in.Name)})
	}

	formatted, err := format(in.Text, in.Name, cfg)
	if err != nil {
		logger.Error("parse failed", "err", err)
		return NewSummary(Error{Kind: KindParsing, Err: issue.NewErrorContext().
			WithOperation("parse script").
			WithResource(in.Name).
			WithIssue(issue.InputParseErrorId).
			Wrap(err).
			BuildError()})
	}
	logger.Debug("formatted", "bytes_in", len(in.Text), "bytes_out", len(formatted))

	errs := checkResult(formatted, in.Name, cfg)

	if !cfg.SkipChildren && in.Dir != "" {
		errs = append(errs, checkChildren(ctx, logger, in.Text, in.Dir, cfg, map[string]bool{})...)
	}

	if err := write(out, in.Name, formatted, cfg.WriteMode); err != nil {
		errs = append(errs, Error{Kind: KindOperational, Err: issue.WrapWithContext(err, "write formatted output", in.Name)})
	}
	return NewSummary(errs...)
}

// checkResult returns the formatting errors of an already formatted buffer.
func checkResult(formatted, name string, cfg config.Config) []Error {
	var errs []Error
	again, err := format(formatted, name, cfg)
	if err != nil || again != formatted {
		errs = append(errs, formattingError(issue.NewErrorContext().
			WithOperation("verify formatting").
			WithResource(name).
			WithIssue(issue.FormattingCheckFailedId).
			Wrap(ErrNotIdempotent).
			BuildError()))
	}

	if !cfg.ErrorOnLineOverflow {
		return errs
	}
	for i, line := range strings.Split(formatted, "\n") {
		if width := utf8.RuneCountInString(line); width > cfg.MaxWidth {
			errs = append(errs, formattingError(issue.NewErrorContext().
				WithOperation("verify formatting").
				WithResource(fmt.Sprintf("%s:%d", name, i+1)).
				WithIssue(issue.FormattingCheckFailedId).
				Wrap(fmt.Errorf("%w: %d > %d", ErrLineOverflow, width, cfg.MaxWidth)).
				BuildError()))
		}
	}
	return errs
}

func formattingError(err error) Error { return Error{Kind: KindFormatting, Err: err} }

// checkChildren verifies every script pulled in with a literal "source" or
// "." path. Children are parsed and compared with their formatted form, never
// rewritten. seen breaks source cycles.
//
// A name without a slash that does not exist under dir is skipped: the shell
// looks it up in PATH, which is not known here.
func checkChildren(ctx context.Context, logger *log.Logger, text, dir string, cfg config.Config, seen map[string]bool) []Error {
	var errs []Error
	for _, rel := range sourcedPaths(text, cfg) {
		if ctx.Err() != nil {
			return append(errs, Error{Kind: KindOperational, Err: ctx.Err()})
		}

		path := fspath.Resolve(rel, dir)
		if seen[path] {
			continue
		}
		seen[path] = true
		logger.Debug("checking sourced script", "path", path)

		data, err := readChild(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && !strings.ContainsRune(rel, '/') {
				logger.Debug("sourced script not found next to input, skipping", "name", rel)
				continue
			}
			errs = append(errs, Error{Kind: KindOperational, Err: childError("read sourced script", path, err)})
			continue
		}
		formatted, err := format(string(data), path, cfg)
		if err != nil {
			errs = append(errs, Error{Kind: KindParsing, Err: childError("parse sourced script", path, err)})
			continue
		}
		if formatted != string(data) {
			errs = append(errs, Error{Kind: KindFormatting, Err: childError("verify sourced script", path, ErrNotFormatted)})
		}
		errs = append(errs, checkChildren(ctx, logger, string(data), filepath.Dir(path), cfg, seen)...)
	}
	return errs
}

func childError(op, path string, err error) error {
	return issue.NewErrorContext().
		WithOperation(op).
		WithResource(path).
		WithIssue(issue.ChildScriptFailedId).
		Wrap(err).
		BuildError()
}

// sourcedPaths lists the literal file arguments of source and "." commands.
// Arguments built from expansions or starting with "~" are skipped. Parse errors yield no paths;
// the caller has already reported them.
func sourcedPaths(text string, cfg config.Config) []string {
	file, err := newParser(cfg).Parse(strings.NewReader(text), "")
	if err != nil {
		return nil
	}

	var paths []string
	syntax.Walk(file, func(node syntax.Node) bool {
		call, ok := node.(*syntax.CallExpr)
		if !ok || len(call.Args) < 2 {
			return true
		}
		switch call.Args[0].Lit() {
		case "source", ".":
			if p := call.Args[1].Lit(); p != "" && !strings.HasPrefix(p, "~") {
				paths = append(paths, p)
			}
		}
		return true
	})
	return paths
}

func format(text, name string, cfg config.Config) (string, error) {
	file, err := newParser(cfg).Parse(strings.NewReader(text), name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := newPrinter(cfg).Print(&buf, file); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func newParser(cfg config.Config) *syntax.Parser {
	return syntax.NewParser(
		syntax.KeepComments(!cfg.Minify),
		syntax.Variant(variant(cfg.Language)),
	)
}

func newPrinter(cfg config.Config) *syntax.Printer {
	return syntax.NewPrinter(
		syntax.Indent(uint(cfg.Indent)),
		syntax.BinaryNextLine(cfg.BinaryNextLine),
		syntax.SwitchCaseIndent(cfg.SwitchCaseIndent),
		syntax.SpaceRedirects(cfg.SpaceRedirects),
		syntax.FunctionNextLine(cfg.FunctionNextLine),
		syntax.Minify(cfg.Minify),
		syntax.SingleLine(cfg.SingleLine),
	)
}

func variant(l config.Language) syntax.LangVariant {
	switch l {
	case config.LanguagePOSIX:
		return syntax.LangPOSIX
	case config.LanguageMksh:
		return syntax.LangMirBSDKorn
	case config.LanguageBats:
		return syntax.LangBats
	default:
		return syntax.LangBash
	}
}

func write(out io.Writer, name, formatted string, mode config.WriteMode) error {
	if mode == config.WriteModeDisplay {
		if _, err := fmt.Fprintf(out, "%s:\n\n", name); err != nil {
			return err
		}
	}
	_, err := io.WriteString(out, formatted)
	return err
}
