// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the bundlekit command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bundlekit",
		Short: "Inspect and validate Fibyos bundles",
		Long: TitleStyle.Render("bundlekit") + SubtitleStyle.Render(" - Inspect and validate Fibyos bundles") + `

A bundle is a directory named <Name>.appd, .serviced, .toolsetd or .frameworkd
that contains Content/Config.json. Its descriptor lives in Content/Info.json.

` + SubtitleStyle.Render("Examples:") + `
  bundlekit check Notes.appd          Classify a directory
  bundlekit info Notes.appd           Print the bundle descriptor
  bundlekit validate --check-arch     Validate this executable's bundle
  bundlekit list ~/Applications       Find bundles below a directory
  bundlekit entitlements -c network   List entitlement tags`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			app.loadConfig(cmd.Context())
		},
	}

	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.configFile, "config", "", "config file (default is $XDG_CONFIG_HOME/bundlekit/config.cue)")

	rootCmd.AddCommand(
		newCheckCommand(app),
		newResolveCommand(app),
		newInfoCommand(app),
		newValidateCommand(app),
		newArchCommand(app),
		newListCommand(app),
		newEntitlementsCommand(app),
		newConfigCommand(app),
	)

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the root command and exits with its status.
// This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})

	// fang overrides rootCmd.Version, so the version goes through WithVersion.
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(exitCodeOf(err))
	}
}
