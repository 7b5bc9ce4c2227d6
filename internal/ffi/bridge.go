// SPDX-License-Identifier: MPL-2.0

package ffi

import (
	"context"
	"io"
	"os"
	"unsafe"

	"github.com/fmtbridge/fmtbridge/internal/app/execute"
	"github.com/fmtbridge/fmtbridge/internal/config"
	"github.com/fmtbridge/fmtbridge/internal/formatter"
	"github.com/fmtbridge/fmtbridge/internal/version"

	"github.com/charmbracelet/log"
)

// bufferName labels the formatted buffer in diagnostics.
const bufferName = "<buffer>"

// Bridge implements the exported library operations.
type Bridge struct {
	orchestrator *execute.Orchestrator
	logger       *log.Logger
	getwd        func() (string, error)
}

// NewBridge creates a Bridge that writes formatted output to stdout and logs
// through logger. Configuration errors are logged and defaults are used.
func NewBridge(logger *log.Logger, stdout io.Writer) *Bridge {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Bridge{
		orchestrator: execute.NewOrchestrator(
			config.NewProvider(),
			formatter.New(logger),
			logger,
			stdout,
			execute.DefaultsOnConfigError,
		),
		logger: logger,
		getwd:  os.Getwd,
	}
}

// Version returns an owned copy of the build version.
func (b *Bridge) Version() unsafe.Pointer {
	p, err := NewOwnedString(version.Get())
	if err != nil {
		// Get never yields a NUL byte; Unknown is always representable.
		p, _ = NewOwnedString(version.Unknown)
	}
	return p
}

// Format formats the borrowed string code. path is the explicit config
// search location; the working directory, read once here, is the fallback.
// Both pointers must be non-nil.
func (b *Bridge) Format(code, path unsafe.Pointer) int {
	src := DecodeString(code)
	explicit := DecodeString(path)

	wd, err := b.getwd()
	if err != nil {
		b.logger.Error("read working directory", "err", err)
		wd = ""
	}

	inputDir := ""
	if explicit != "" {
		inputDir = config.NormalizeSearchRoot(explicit, wd)
	}

	status := b.orchestrator.Execute(context.Background(), execute.Request{
		Buffer:     src,
		ConfigPath: explicit,
		SearchRoot: wd,
		WorkDir:    wd,
		InputName:  bufferName,
		InputDir:   inputDir,
		Embedded:   true,
	})
	return int(status)
}

// Free releases an owned buffer and logs a refused release.
func (b *Bridge) Free(p unsafe.Pointer) {
	if err := Release(p); err != nil {
		b.logger.Error("release string", "err", err)
	}
}
