// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fibyos/bundlekit/internal/issue"
	"github.com/fibyos/bundlekit/pkg/bundle"
)

type resolveReport struct {
	Start      string   `json:"start" toml:"start"`
	Root       string   `json:"root,omitempty" toml:"root,omitempty"`
	Candidates []string `json:"candidates,omitempty" toml:"candidates,omitempty"`
}

func newResolveCommand(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "resolve [path]",
		Short: "Find the bundle root enclosing a path",
		Long: `Walk upward from a path and print the outermost enclosing bundle.

Without a path the walk starts at the bundlekit executable itself. The path
is never a candidate for itself. With --all every enclosing bundle is listed,
nearest first.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, app, args, all)
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "list every enclosing bundle, nearest first")
	addFormatFlag(cmd)
	return cmd
}

func runResolve(cmd *cobra.Command, app *App, args []string, all bool) error {
	format, err := app.outputFormat(cmd)
	if err != nil {
		return err
	}

	start, err := resolveStart(app, args)
	if err != nil {
		return app.fail(cmd, err)
	}

	report := resolveReport{Start: start}
	if all {
		report.Candidates = bundle.FindRoots(start)
	}

	root, ok := bundle.FindRoot(start)
	if !ok {
		return app.fail(cmd, issue.NewErrorContext().
			WithOperation("resolve bundle root").
			WithResource(start).
			WithIssue(issue.BundleRootNotFoundId).
			WithSuggestion("Pass a path located inside a bundle, e.g. Notes.appd/Content/bin/notes").
			Wrap(bundle.ErrRootNotFound).
			BuildError())
	}
	report.Root = root

	return emit(cmd.OutOrStdout(), format, report, func(w io.Writer) {
		if !all {
			fmt.Fprintln(w, root)
			return
		}
		for _, c := range report.Candidates {
			marker := " "
			if c == root {
				marker = SuccessStyle.Render("*")
			}
			fmt.Fprintf(w, "%s %s\n", marker, PathStyle.Render(c))
		}
	})
}

// resolveStart returns the absolute walk start for args, defaulting to the
// executable path.
func resolveStart(app *App, args []string) (string, error) {
	if len(args) > 0 {
		abs, err := filepath.Abs(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to resolve %s: %w", args[0], err)
		}
		return abs, nil
	}

	exe, err := app.executable()
	if err != nil {
		return "", errors.Join(bundle.ErrIO, fmt.Errorf("cannot determine executable path: %w", err))
	}
	return exe, nil
}
