// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/fmtbridge/fmtbridge/internal/app/execute"
	"github.com/fmtbridge/fmtbridge/internal/config"
	"github.com/fmtbridge/fmtbridge/internal/issue"
	"github.com/fmtbridge/fmtbridge/pkg/types"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `fmtbridge config` command tree.
func newConfigCommand(app *App, flags *rootFlags) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect fmtbridge configuration",
		Long: `Inspect fmtbridge configuration.

Configuration is read from the nearest fmtbridge.toml in the search root
or its ancestors. --config-path is searched first; the working directory
is the fallback.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app, flags)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "options",
		Short: "List the recognized fmtbridge.toml options",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showOptions(app)
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App, flags *rootFlags) error {
	wd, err := app.getwd()
	if err != nil {
		return reportExit(app, flags, types.StatusOperationalError,
			issue.WrapWithContext(err, "read working directory", ""))
	}

	explicit := flags.configPath
	if explicit != "" {
		explicit = config.NormalizeSearchRoot(explicit, wd)
	}
	resolved, err := app.Config.Load(ctx, config.LoadOptions{
		ConfigPath: explicit,
		SearchRoot: wd,
		WorkDir:    wd,
	})
	if err != nil {
		return reportExit(app, flags, execute.StatusForConfigError(err), err)
	}

	data, err := resolved.Config.MarshalTOML()
	if err != nil {
		return reportExit(app, flags, types.StatusOperationalError,
			issue.WrapWithContext(err, "encode configuration", resolved.Path))
	}

	source := SubtitleStyle.Render("(using defaults)")
	if resolved.Path != "" {
		source = SuccessStyle.Render(resolved.Path)
	}

	fmt.Fprintln(app.stdout, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(app.stdout)
	fmt.Fprintf(app.stdout, "%s: %s\n", CmdStyle.Render("Config file"), source)
	fmt.Fprintln(app.stdout)
	fmt.Fprint(app.stdout, string(data))
	return nil
}

func showOptions(app *App) error {
	md := config.OptionsMarkdown()
	rendered, err := renderMarkdown(md, guideStyle)
	if err != nil {
		rendered = md
	}
	_, err = fmt.Fprint(app.stdout, rendered)
	return err
}
