// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fibyos/bundlekit/internal/issue"
	"github.com/fibyos/bundlekit/pkg/bundle"
	"github.com/fibyos/bundlekit/pkg/bundleinfo"
	"github.com/fibyos/bundlekit/pkg/entitlement"
)

func newInfoCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info [path]",
		Short: "Print the descriptor of a bundle",
		Long: `Load Content/Info.json of a bundle and print it.

The path may be a bundle directory, which is used as is even when nested in
another bundle, or any file inside one, which selects the outermost enclosing
bundle. Without a path the bundle enclosing the bundlekit executable is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd, app, args)
		},
	}
	addFormatFlag(cmd)
	return cmd
}

func runInfo(cmd *cobra.Command, app *App, args []string) error {
	format, err := app.outputFormat(cmd)
	if err != nil {
		return err
	}

	proc, err := app.processFor(args)
	if err != nil {
		return app.fail(cmd, err)
	}

	info, err := proc.LoadInfo()
	if err != nil {
		return app.fail(cmd, loadFailure(err))
	}
	root, _ := proc.Root()

	return emit(cmd.OutOrStdout(), format, info, func(w io.Writer) {
		printInfo(w, root, info)
	})
}

// loadFailure links a descriptor load error to its catalog issue.
func loadFailure(err error) error {
	ctx := issue.NewErrorContext().WithOperation("load bundle descriptor").Wrap(err)

	var loadErr *bundle.LoadError
	if errors.As(err, &loadErr) && loadErr.Path != "" {
		ctx.WithResource(loadErr.Path)
	}

	switch {
	case errors.Is(err, bundle.ErrRootNotFound):
		ctx.WithIssue(issue.BundleRootNotFoundId).
			WithSuggestion("Pass a bundle directory or a path inside one")
	case errors.Is(err, fs.ErrPermission):
		ctx.WithIssue(issue.PermissionDeniedId)
	case errors.Is(err, bundle.ErrNotFound):
		ctx.WithIssue(issue.InfoNotFoundId)
	case errors.Is(err, entitlement.ErrUnknown):
		ctx.WithIssue(issue.UnknownEntitlementId).
			WithSuggestion("Run 'bundlekit entitlements' to list valid tags")
	case errors.Is(err, bundle.ErrAlreadyLoaded):
		ctx.WithIssue(issue.InfoAlreadyLoadedId)
	case errors.Is(err, bundle.ErrInvalidFormat):
		ctx.WithIssue(issue.InfoParseErrorId)
	}

	return ctx.BuildError()
}

func printInfo(w io.Writer, root string, info *bundleinfo.Info) {
	field := func(key, value string) {
		if value == "" {
			value = SubtitleStyle.Render("(empty)")
		}
		fmt.Fprintf(w, "  %s %s\n", KeyStyle.Render(fmt.Sprintf("%-22s", key+":")), value)
	}

	fmt.Fprintln(w, TitleStyle.Render(info.Name))
	fmt.Fprintln(w, SubtitleStyle.Render(root))
	fmt.Fprintln(w)

	field("identifier", info.Identifier)
	field("entry_point", info.EntryPoint)
	field("minimum_system_version", info.MinimumSystemVersion)
	field("platforms", strings.Join(info.Platforms, ", "))
	field("device_family", strings.Join(info.DeviceFamily, ", "))

	tags := make([]string, len(info.Entitlements))
	for i, t := range info.Entitlements {
		tags[i] = t.String()
	}
	field("entitlements", strings.Join(tags, ", "))

	schemes := make([]string, len(info.URLSchemes))
	for i, s := range info.URLSchemes {
		schemes[i] = s.Scheme
	}
	field("url_schemes", strings.Join(schemes, ", "))
	field("background_modes", strings.Join(info.AppServices.BackgroundModes, ", "))
	field("app_sandbox", fmt.Sprint(info.Security.AppSandbox))
	field("allows_insecure_http", fmt.Sprint(info.Security.AppTransportSecurity.AllowsInsecureHTTP))
	field("team_id", info.Security.CodeSignature.TeamID)

	if len(info.Metadata) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, SubtitleStyle.Render("Metadata:"))
		keys := make([]string, 0, len(info.Metadata))
		for k := range info.Metadata {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			field(k, info.Metadata[k])
		}
	}
}
