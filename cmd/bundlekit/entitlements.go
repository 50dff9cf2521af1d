// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fibyos/bundlekit/pkg/entitlement"
)

type (
	entitlementGroup struct {
		Category entitlement.Category `json:"category" toml:"category"`
		Tags     []entitlement.Type   `json:"tags" toml:"tags"`
	}

	entitlementReport struct {
		Count      int                `json:"count" toml:"count"`
		Categories []entitlementGroup `json:"categories" toml:"categories"`
	}
)

func newEntitlementsCommand(app *App) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "entitlements",
		Short: "List the entitlement vocabulary",
		Long: `List every entitlement tag a descriptor may request, grouped by category.

Tags are matched exactly: lowercase, without separators.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEntitlements(cmd, app, category)
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "only list one category")
	addFormatFlag(cmd)
	return cmd
}

// groupEntitlements groups the vocabulary by category in declaration order.
func groupEntitlements() []entitlementGroup {
	var groups []entitlementGroup
	for _, t := range entitlement.All() {
		i := slices.IndexFunc(groups, func(g entitlementGroup) bool { return g.Category == t.Category() })
		if i < 0 {
			groups = append(groups, entitlementGroup{Category: t.Category()})
			i = len(groups) - 1
		}
		groups[i].Tags = append(groups[i].Tags, t)
	}
	return groups
}

func runEntitlements(cmd *cobra.Command, app *App, category string) error {
	format, err := app.outputFormat(cmd)
	if err != nil {
		return err
	}

	groups := groupEntitlements()
	if category != "" {
		i := slices.IndexFunc(groups, func(g entitlementGroup) bool { return string(g.Category) == category })
		if i < 0 {
			names := make([]string, len(groups))
			for j, g := range groups {
				names[j] = g.Category.String()
			}
			return fmt.Errorf("unknown category %q (valid: %s)", category, strings.Join(names, ", "))
		}
		groups = groups[i : i+1]
	}

	report := entitlementReport{Categories: groups}
	for _, g := range groups {
		report.Count += len(g.Tags)
	}

	return emit(cmd.OutOrStdout(), format, report, func(w io.Writer) {
		for i, g := range report.Categories {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintln(w, TitleStyle.Render(g.Category.String()))
			for _, t := range g.Tags {
				fmt.Fprintf(w, "  %s\n", KeyStyle.Render(t.String()))
			}
		}
	})
}
