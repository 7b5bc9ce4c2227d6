// SPDX-License-Identifier: MPL-2.0

package execute

import (
	"bufio"
	"context"
	"io"

	"github.com/fmtbridge/fmtbridge/internal/config"
	"github.com/fmtbridge/fmtbridge/internal/formatter"
	"github.com/fmtbridge/fmtbridge/pkg/fspath"
	"github.com/fmtbridge/fmtbridge/pkg/types"

	"github.com/charmbracelet/log"
)

const (
	// AbortOnConfigError stops on a resolution error and returns its status.
	AbortOnConfigError ConfigErrorPolicy = iota
	// DefaultsOnConfigError logs a resolution error and formats with
	// DefaultConfig().
	DefaultsOnConfigError
)

type (
	// ConfigErrorPolicy decides what Execute does when configuration cannot
	// be resolved.
	ConfigErrorPolicy int

	// Runner formats one input. *formatter.Formatter implements it.
	Runner interface {
		Run(ctx context.Context, in formatter.Input, cfg config.Config, out io.Writer) formatter.Summary
	}

	// Request is a single formatting call.
	Request struct {
		// Buffer is the shell source to format.
		Buffer string
		// ConfigPath is the explicit config search location. A path naming a
		// file is replaced by its parent directory. Empty means none.
		ConfigPath string
		// SearchRoot is the fallback search location.
		SearchRoot string
		// WorkDir resolves relative ConfigPath, SearchRoot and InputDir.
		WorkDir string
		// InputName labels the buffer in diagnostics.
		InputName string
		// InputDir resolves sourced child scripts. Empty disables the check.
		InputDir string
		// SkipChildren disables checking of sourced child scripts.
		SkipChildren bool
		// Embedded marks a call from the shared library.
		Embedded bool
	}

	// Result is the outcome of Run.
	Result struct {
		Code types.ExitCode
		// ConfigErr is the resolution error, also set when defaults were used.
		ConfigErr error
		// ConfigPath is the file the configuration came from, if any.
		ConfigPath string
		Summary    formatter.Summary
	}

	// Orchestrator wires configuration resolution to the formatter.
	Orchestrator struct {
		provider config.Provider
		runner   Runner
		logger   *log.Logger
		stdout   io.Writer
		policy   ConfigErrorPolicy
	}
)

// String returns the policy name.
func (p ConfigErrorPolicy) String() string {
	if p == DefaultsOnConfigError {
		return "defaults"
	}
	return "abort"
}

// NewOrchestrator creates an Orchestrator. Formatted output goes to stdout.
func NewOrchestrator(provider config.Provider, runner Runner, logger *log.Logger, stdout io.Writer, policy ConfigErrorPolicy) *Orchestrator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Orchestrator{
		provider: provider,
		runner:   runner,
		logger:   logger,
		stdout:   stdout,
		policy:   policy,
	}
}

// Execute formats req.Buffer and returns its status code. All output is
// flushed before it returns.
func (o *Orchestrator) Execute(ctx context.Context, req Request) types.ExitCode {
	return o.Run(ctx, req).Code
}

// Run is Execute with the details a caller needs to report failures.
func (o *Orchestrator) Run(ctx context.Context, req Request) (res Result) {
	out := bufio.NewWriter(o.stdout)
	defer func() {
		if err := out.Flush(); err != nil {
			o.logger.Error("flush output", "err", err)
			if res.Code == types.StatusSuccess {
				res.Code = types.StatusOperationalError
			}
		}
		o.logger.Debug("finished", "input", req.InputName, "status", int(res.Code), "result", res.Code.Describe())
	}()

	explicit := req.ConfigPath
	if explicit != "" {
		explicit = config.NormalizeSearchRoot(explicit, req.WorkDir)
	}

	o.logger.Debug("resolving configuration", "explicit", explicit, "fallback", req.SearchRoot, "policy", o.policy)
	resolved, err := o.provider.Load(ctx, config.LoadOptions{
		ConfigPath: explicit,
		SearchRoot: req.SearchRoot,
		WorkDir:    req.WorkDir,
	})
	cfg := resolved.Config
	if err != nil {
		res.ConfigErr = err
		if o.policy == AbortOnConfigError {
			res.Code = StatusForConfigError(err)
			return res
		}
		o.logger.Error("configuration ignored, using defaults", "err", err)
		cfg = config.DefaultConfig()
	} else {
		res.ConfigPath = resolved.Path
		if resolved.Path != "" {
			o.logger.Debug("using configuration", "path", resolved.Path)
		}
	}

	final := cfg.Finalize(config.Overrides{
		SkipChildren: req.SkipChildren,
		Embedded:     req.Embedded,
	})

	res.Summary = o.runner.Run(ctx, formatter.Input{
		Name: req.InputName,
		Text: req.Buffer,
		Dir:  fspath.Resolve(req.InputDir, req.WorkDir),
	}, final, out)

	for _, e := range res.Summary.Errors() {
		o.logger.Error(e.Err.Error(), "kind", e.Kind)
	}
	res.Code = StatusFor(res.Summary)
	return res
}
