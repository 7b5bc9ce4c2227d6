// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/fmtbridge/fmtbridge/internal/version"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// rootFlags are the flags shared by every command.
type rootFlags struct {
	configPath   string
	skipChildren bool
	verbose      bool
}

// NewRootCommand builds the command tree for app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "fmtbridge [file|-]",
		Short: "Format shell scripts with project configuration",
		Long: TitleStyle.Render("fmtbridge") + SubtitleStyle.Render(" - Format shell scripts with project configuration") + `

fmtbridge formats a shell script read from a file or standard input and
writes the result to standard output. Settings come from the nearest
fmtbridge.toml found in the search root or any of its ancestors.

` + SubtitleStyle.Render("Exit codes:") + `
  0    formatted without errors
  1    operational error (I/O, unreadable configuration)
  2    parsing error (malformed script or configuration)
  3    formatting error (unstable output, line overflow, unformatted child)
  255  invalid arguments

` + SubtitleStyle.Render("Examples:") + `
  fmtbridge deploy.sh                    Format a file
  cat deploy.sh | fmtbridge              Format standard input
  fmtbridge --config-path ci/ build.sh   Search ci/ for fmtbridge.toml first
  fmtbridge config show                  Show the resolved configuration`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd.Context(), app, flags, args)
		},
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config-path", "", "directory or file to search for fmtbridge.toml before the input's directory")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging and issue guides")
	root.Flags().BoolVar(&flags.skipChildren, "skip-children", false, "do not check scripts pulled in with source or .")

	root.AddCommand(newConfigCommand(app, flags))
	root.AddCommand(newVersionCommand(app))

	return root
}

// Execute runs the CLI and exits with the status of the invocation.
// This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(version.Long()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(handleError),
	)
	os.Exit(int(exitCodeFor(err)))
}

// handleError prints errors that no command handler reported.
func handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

func newVersionCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the fmtbridge version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := io.WriteString(app.stdout, version.Long()+"\n")
			return err
		},
	}
}
