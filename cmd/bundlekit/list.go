// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fibyos/bundlekit/internal/issue"
	"github.com/fibyos/bundlekit/pkg/bundle"
)

var errNoSearchPaths = errors.New("no directories to scan")

type listReport struct {
	Bundles []bundle.Found `json:"bundles" toml:"bundles"`
}

func newListCommand(app *App) *cobra.Command {
	var kindFilter string

	cmd := &cobra.Command{
		Use:   "list [dir...]",
		Short: "Find bundles below directories",
		Long: `Scan directories for bundles, sorted by path.

Bundles are not descended into, so nested bundles are not listed. Without
arguments the search_paths from the configuration are scanned.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, app, args, kindFilter)
		},
	}

	cmd.Flags().StringVarP(&kindFilter, "kind", "k", "", "only list bundles of this kind (application, service, toolset, framework)")
	addFormatFlag(cmd)
	return cmd
}

func runList(cmd *cobra.Command, app *App, dirs []string, kindFilter string) error {
	format, err := app.outputFormat(cmd)
	if err != nil {
		return err
	}

	var kind bundle.Kind
	if kindFilter != "" {
		if kind, err = bundle.ParseKind(kindFilter); err != nil {
			return err
		}
	}

	if len(dirs) == 0 {
		dirs = app.cfg.SearchPaths
	}
	if len(dirs) == 0 {
		return app.fail(cmd, issue.NewErrorContext().
			WithOperation("list bundles").
			WithSuggestion("Pass one or more directories").
			WithSuggestion("Add search_paths to the configuration file").
			Wrap(errNoSearchPaths).
			BuildError())
	}

	report := listReport{Bundles: []bundle.Found{}}
	for _, dir := range dirs {
		found, err := bundle.Scan(cmd.Context(), dir)
		if err != nil {
			if ctxErr := cmd.Context().Err(); ctxErr != nil {
				return ctxErr
			}
			app.logger.Warn("skipping directory", "dir", dir, "err", err)
			continue
		}
		for _, f := range found {
			if kind == "" || f.Kind == kind {
				report.Bundles = append(report.Bundles, f)
			}
		}
	}

	return emit(cmd.OutOrStdout(), format, report, func(w io.Writer) {
		if len(report.Bundles) == 0 {
			fmt.Fprintln(w, SubtitleStyle.Render("No bundles found"))
			return
		}
		for _, f := range report.Bundles {
			fmt.Fprintf(w, "%-10s %s\n", f.Kind, PathStyle.Render(f.Path))
		}
	})
}
