// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fibyos/bundlekit/internal/config"
	"github.com/fibyos/bundlekit/internal/issue"
	"github.com/fibyos/bundlekit/pkg/bundle"
)

type (
	// checkResult is the classification of one directory.
	checkResult struct {
		Path     string      `json:"path" toml:"path"`
		IsBundle bool        `json:"is_bundle" toml:"is_bundle"`
		Kind     bundle.Kind `json:"kind,omitempty" toml:"kind,omitempty"`
		Name     string      `json:"name,omitempty" toml:"name,omitempty"`
	}

	checkReport struct {
		Results []checkResult `json:"results" toml:"results"`
	}
)

func newCheckCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <dir>...",
		Short: "Classify directories as bundles",
		Long: `Classify each directory by its suffix and structure.

A directory is a bundle when its name ends in .appd, .serviced, .toolsetd or
.frameworkd and it contains Content/Config.json. The command exits with
status 1 when any argument is not a bundle.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, app, args)
		},
	}
	addFormatFlag(cmd)
	return cmd
}

func runCheck(cmd *cobra.Command, app *App, dirs []string) error {
	format, err := app.outputFormat(cmd)
	if err != nil {
		return err
	}

	report := checkReport{Results: make([]checkResult, 0, len(dirs))}
	allBundles := true
	for _, dir := range dirs {
		res := checkResult{Path: dir}
		if kind, ok := bundle.KindOf(dir); ok {
			res.IsBundle = true
			res.Kind = kind
			res.Name = bundle.Name(dir)
		} else {
			allBundles = false
		}
		app.logger.Debug("classified", "path", dir, "bundle", res.IsBundle, "kind", res.Kind)
		report.Results = append(report.Results, res)
	}

	if err := emit(cmd.OutOrStdout(), format, report, func(w io.Writer) {
		for _, res := range report.Results {
			if res.IsBundle {
				fmt.Fprintf(w, "%s %s %s\n", SuccessStyle.Render("✓"), PathStyle.Render(res.Path), SubtitleStyle.Render(res.Kind.String()))
			} else {
				fmt.Fprintf(w, "%s %s %s\n", ErrorStyle.Render("✗"), PathStyle.Render(res.Path), SubtitleStyle.Render("not a bundle"))
			}
		}
	}); err != nil {
		return err
	}

	if !allBundles {
		if format == config.OutputText {
			app.renderIssue(cmd.ErrOrStderr(), issue.Get(issue.NotABundleId))
		}
		cmd.SilenceErrors = true
		return &ExitError{Code: 1}
	}
	return nil
}
