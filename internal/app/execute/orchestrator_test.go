// SPDX-License-Identifier: MPL-2.0

package execute

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fmtbridge/fmtbridge/internal/config"
	"github.com/fmtbridge/fmtbridge/internal/discovery"
	"github.com/fmtbridge/fmtbridge/internal/formatter"
	"github.com/fmtbridge/fmtbridge/internal/testutil"
	"github.com/fmtbridge/fmtbridge/pkg/types"

	"github.com/charmbracelet/log"
)

type (
	stubProvider struct {
		resolved config.Resolved
		err      error
		got      config.LoadOptions
	}

	stubRunner struct {
		summary formatter.Summary
		output  string
		cfg     config.Config
		in      formatter.Input
		called  bool
	}

	brokenWriter struct{}
)

func (p *stubProvider) Load(_ context.Context, opts config.LoadOptions) (config.Resolved, error) {
	p.got = opts
	return p.resolved, p.err
}

func (r *stubRunner) Run(_ context.Context, in formatter.Input, cfg config.Config, out io.Writer) formatter.Summary {
	r.called = true
	r.in = in
	r.cfg = cfg
	_, _ = io.WriteString(out, r.output)
	return r.summary
}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func kinded(kinds ...formatter.Kind) formatter.Summary {
	errs := make([]formatter.Error, len(kinds))
	for i, k := range kinds {
		errs[i] = formatter.Error{Kind: k, Err: fmt.Errorf("%s failure", k)}
	}
	return formatter.NewSummary(errs...)
}

func TestStatusFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		summary formatter.Summary
		want    types.ExitCode
	}{
		{"clean", kinded(), types.StatusSuccess},
		{"formatting", kinded(formatter.KindFormatting), types.StatusFormattingError},
		{"parsing", kinded(formatter.KindParsing), types.StatusParsingError},
		{"operational", kinded(formatter.KindOperational), types.StatusOperationalError},
		{"parsing beats formatting", kinded(formatter.KindFormatting, formatter.KindParsing), types.StatusParsingError},
		{"operational beats all", kinded(formatter.KindFormatting, formatter.KindParsing, formatter.KindOperational), types.StatusOperationalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := StatusFor(tt.summary); got != tt.want {
				t.Errorf("StatusFor() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStatusForConfigError(t *testing.T) {
	t.Parallel()

	parse := &config.ParseError{Path: "fmtbridge.toml", Err: errors.New("bad")}
	read := &config.ReadError{Path: "fmtbridge.toml", Err: os.ErrPermission}

	if got := StatusForConfigError(fmt.Errorf("wrapped: %w", parse)); got != types.StatusParsingError {
		t.Errorf("parse error status = %d, want 2", got)
	}
	if got := StatusForConfigError(read); got != types.StatusOperationalError {
		t.Errorf("read error status = %d, want 1", got)
	}
	if got := StatusForConfigError(errors.New("search failed")); got != types.StatusOperationalError {
		t.Errorf("other error status = %d, want 1", got)
	}
}

func TestExecute_FinalizesConfig(t *testing.T) {
	t.Parallel()

	fileCfg := config.DefaultConfig()
	fileCfg.Verbose = true
	fileCfg.Indent = 3
	provider := &stubProvider{resolved: config.Resolved{Config: fileCfg, Path: "/x/fmtbridge.toml"}}
	runner := &stubRunner{output: "ok\n"}
	var out bytes.Buffer

	o := NewOrchestrator(provider, runner, nil, &out, AbortOnConfigError)
	code := o.Execute(context.Background(), Request{
		Buffer:       "echo ok",
		SearchRoot:   "/fallback",
		WorkDir:      "/work",
		InputName:    "<stdin>",
		InputDir:     "scripts",
		SkipChildren: true,
		Embedded:     true,
	})

	if code != types.StatusSuccess {
		t.Fatalf("Execute() = %d, want 0", code)
	}
	if out.String() != "ok\n" {
		t.Errorf("output = %q, want flushed runner output", out.String())
	}
	if runner.cfg.WriteMode != config.WriteModePlain {
		t.Errorf("WriteMode = %s, want plain", runner.cfg.WriteMode)
	}
	if !runner.cfg.SkipChildren || runner.cfg.Verbose || runner.cfg.Indent != 3 {
		t.Errorf("finalized config = %+v", runner.cfg)
	}
	if runner.in.Dir != filepath.Join("/work", "scripts") {
		t.Errorf("input dir = %q", runner.in.Dir)
	}
	if runner.in.Text != "echo ok" || runner.in.Name != "<stdin>" {
		t.Errorf("input = %+v", runner.in)
	}
	if provider.got.ConfigPath != "" || provider.got.SearchRoot != "/fallback" || provider.got.WorkDir != "/work" {
		t.Errorf("load options = %+v", provider.got)
	}
}

func TestExecute_NormalizesExplicitFilePath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "script.sh")
	testutil.MustWriteFile(t, file, "echo\n")

	provider := &stubProvider{resolved: config.Resolved{Config: config.DefaultConfig()}}
	o := NewOrchestrator(provider, &stubRunner{}, nil, io.Discard, AbortOnConfigError)
	o.Execute(context.Background(), Request{ConfigPath: file, SearchRoot: dir})

	if provider.got.ConfigPath != dir {
		t.Errorf("ConfigPath = %q, want parent %q", provider.got.ConfigPath, dir)
	}
}

func TestExecute_ConfigErrorPolicy(t *testing.T) {
	t.Parallel()

	parseErr := fmt.Errorf("load: %w", &config.ParseError{Path: "p", Err: errors.New("bad")})
	readErr := &config.ReadError{Path: "p", Err: os.ErrPermission}

	tests := []struct {
		name       string
		err        error
		policy     ConfigErrorPolicy
		want       types.ExitCode
		wantRunner bool
	}{
		{"abort on parse", parseErr, AbortOnConfigError, types.StatusParsingError, false},
		{"abort on read", readErr, AbortOnConfigError, types.StatusOperationalError, false},
		{"defaults on parse", parseErr, DefaultsOnConfigError, types.StatusSuccess, true},
		{"defaults on read", readErr, DefaultsOnConfigError, types.StatusSuccess, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			runner := &stubRunner{}
			o := NewOrchestrator(&stubProvider{err: tt.err}, runner, nil, io.Discard, tt.policy)
			got := o.Execute(context.Background(), Request{Buffer: "echo"})

			if got != tt.want {
				t.Errorf("Execute() = %d, want %d", got, tt.want)
			}
			if runner.called != tt.wantRunner {
				t.Errorf("runner called = %v, want %v", runner.called, tt.wantRunner)
			}
			if tt.wantRunner && runner.cfg.Language != config.LanguageBash {
				t.Errorf("defaults not applied: %+v", runner.cfg)
			}
		})
	}
}

func TestExecute_FlushFailureIsOperational(t *testing.T) {
	t.Parallel()

	runner := &stubRunner{output: "formatted\n"}
	o := NewOrchestrator(&stubProvider{}, runner, nil, brokenWriter{}, AbortOnConfigError)
	if got := o.Execute(context.Background(), Request{}); got != types.StatusOperationalError {
		t.Errorf("Execute() = %d, want 1", got)
	}
}

func TestExecute_FlushKeepsHigherStatus(t *testing.T) {
	t.Parallel()

	runner := &stubRunner{output: "x\n", summary: kinded(formatter.KindFormatting)}
	o := NewOrchestrator(&stubProvider{}, runner, nil, brokenWriter{}, AbortOnConfigError)
	if got := o.Execute(context.Background(), Request{}); got != types.StatusFormattingError {
		t.Errorf("Execute() = %d, want 3", got)
	}
}

func TestExecute_LogsFinalStatus(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	logger := log.NewWithOptions(&logs, log.Options{Level: log.DebugLevel})
	o := NewOrchestrator(&stubProvider{}, &stubRunner{output: "x\n"}, logger, brokenWriter{}, AbortOnConfigError)
	o.Execute(context.Background(), Request{InputName: "<buffer>"})

	if !strings.Contains(logs.String(), "operational error") {
		t.Errorf("logs should describe the status after the flush, got %q", logs.String())
	}
}

func newRealOrchestrator(out io.Writer, policy ConfigErrorPolicy) *Orchestrator {
	return NewOrchestrator(config.NewProvider(), formatter.New(nil), nil, out, policy)
}

func TestExecute_EndToEndDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var out bytes.Buffer
	code := newRealOrchestrator(&out, AbortOnConfigError).Execute(context.Background(), Request{
		Buffer:     "if true; then\necho   hi\nfi\n",
		SearchRoot: dir,
		InputName:  "<stdin>",
	})

	if code != types.StatusSuccess {
		t.Fatalf("Execute() = %d, want 0", code)
	}
	if want := "if true; then\n\techo hi\nfi\n"; out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestExecute_EndToEndAncestorConfig(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	deep := filepath.Join(root, "a", "b")
	testutil.MustMkdirAll(t, deep)
	testutil.MustWriteFile(t, filepath.Join(root, discovery.ProjectFileName), "indent = 2\n")

	var out bytes.Buffer
	code := newRealOrchestrator(&out, AbortOnConfigError).Execute(context.Background(), Request{
		Buffer:     "if true; then\necho hi\nfi\n",
		SearchRoot: deep,
	})

	if code != types.StatusSuccess {
		t.Fatalf("Execute() = %d, want 0", code)
	}
	if want := "if true; then\n  echo hi\nfi\n"; out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestExecute_EndToEndExplicitWins(t *testing.T) {
	t.Parallel()

	explicit := t.TempDir()
	fallback := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(explicit, discovery.ProjectFileName), "indent = 4\n")
	testutil.MustWriteFile(t, filepath.Join(fallback, discovery.ProjectFileName), "indent = 1\n")

	var out bytes.Buffer
	code := newRealOrchestrator(&out, AbortOnConfigError).Execute(context.Background(), Request{
		Buffer:     "if true; then\necho hi\nfi\n",
		ConfigPath: explicit,
		SearchRoot: fallback,
	})

	if code != types.StatusSuccess {
		t.Fatalf("Execute() = %d, want 0", code)
	}
	if want := "if true; then\n    echo hi\nfi\n"; out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestExecute_EndToEndMalformedConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(dir, discovery.ProjectFileName), "indent = = 2\n")
	req := Request{Buffer: "echo hi\n", SearchRoot: dir}

	var out bytes.Buffer
	if code := newRealOrchestrator(&out, AbortOnConfigError).Execute(context.Background(), req); code != types.StatusParsingError {
		t.Errorf("abort policy = %d, want 2", code)
	}
	if out.Len() != 0 {
		t.Errorf("abort should not format, got %q", out.String())
	}

	out.Reset()
	if code := newRealOrchestrator(&out, DefaultsOnConfigError).Execute(context.Background(), req); code != types.StatusSuccess {
		t.Errorf("defaults policy = %d, want 0", code)
	}
	if out.String() != "echo hi\n" {
		t.Errorf("defaults output = %q", out.String())
	}
}

func TestExecute_EndToEndParseError(t *testing.T) {
	t.Parallel()

	code := newRealOrchestrator(io.Discard, AbortOnConfigError).Execute(context.Background(), Request{
		Buffer:     "if true; then\n",
		SearchRoot: t.TempDir(),
	})
	if code != types.StatusParsingError {
		t.Errorf("Execute() = %d, want 2", code)
	}
}

func TestRun_ReportsConfigError(t *testing.T) {
	t.Parallel()

	readErr := &config.ReadError{Path: "p", Err: os.ErrPermission}

	res := NewOrchestrator(&stubProvider{err: readErr}, &stubRunner{}, nil, io.Discard, AbortOnConfigError).
		Run(context.Background(), Request{})
	if !errors.Is(res.ConfigErr, config.ErrConfigRead) || res.Code != types.StatusOperationalError {
		t.Errorf("abort result = %+v", res)
	}

	res = NewOrchestrator(&stubProvider{err: readErr}, &stubRunner{}, nil, io.Discard, DefaultsOnConfigError).
		Run(context.Background(), Request{})
	if res.ConfigErr == nil || res.Code != types.StatusSuccess {
		t.Errorf("defaults result = %+v", res)
	}

	ok := config.Resolved{Config: config.DefaultConfig(), Path: "/p/fmtbridge.toml"}
	res = NewOrchestrator(&stubProvider{resolved: ok}, &stubRunner{summary: kinded(formatter.KindParsing)}, nil, io.Discard, AbortOnConfigError).
		Run(context.Background(), Request{})
	if res.ConfigPath != ok.Path || !res.Summary.HasParsingErrors() || res.Code != types.StatusParsingError {
		t.Errorf("run result = %+v", res)
	}
}
