// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"
	"os"

	"github.com/fmtbridge/fmtbridge/internal/config"

	"github.com/charmbracelet/log"
)

type (
	// App wires CLI services and shared dependencies. Every command handler
	// receives it and reads its input and streams only through it.
	// Configuration files are read by the Config provider.
	App struct {
		Config config.Provider
		stdin  io.Reader
		stdout io.Writer
		stderr   io.Writer
		getwd    func() (string, error)
		readFile func(string) ([]byte, error)
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		Stdin  io.Reader
		Stdout io.Writer
		Stderr   io.Writer
		Getwd    func() (string, error)
		ReadFile func(string) ([]byte, error)
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Getwd == nil {
		deps.Getwd = os.Getwd
	}
	if deps.ReadFile == nil {
		deps.ReadFile = os.ReadFile
	}

	return &App{
		Config:   deps.Config,
		stdin:    deps.Stdin,
		stdout:   deps.Stdout,
		stderr:   deps.Stderr,
		getwd:    deps.Getwd,
		readFile: deps.ReadFile,
	}
}

// newLogger returns the stderr logger for one invocation.
func (a *App) newLogger(verbose bool) *log.Logger {
	logger := log.NewWithOptions(a.stderr, log.Options{Prefix: "fmtbridge"})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
