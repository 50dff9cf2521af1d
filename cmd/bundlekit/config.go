// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fibyos/bundlekit/internal/config"
	"github.com/fibyos/bundlekit/internal/issue"
)

var errUnknownConfigKey = errors.New("unknown configuration key")

// newConfigCommand creates the `bundlekit config` command tree.
// Subcommands that read configuration use the App's Provider.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage bundlekit configuration",
		Long: `Manage bundlekit configuration.

Configuration is stored in:
  - Linux: ~/.config/bundlekit/config.cue
  - macOS: ~/Library/Application Support/bundlekit/config.cue
  - Windows: %APPDATA%\bundlekit\config.cue

Every key can be overridden with a BUNDLEKIT_ environment variable, e.g.
BUNDLEKIT_LOG_LEVEL=debug or BUNDLEKIT_SEARCH_PATHS=/opt/apps,/srv/apps.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showConfig(cmd, app)
		},
	}
	addFormatFlag(showCmd)

	cfgCmd.AddCommand(
		showCmd,
		&cobra.Command{
			Use:   "init",
			Short: "Create the default configuration file",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return initConfig(cmd)
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Show the configuration file path",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return showConfigPath(cmd, app)
			},
		},
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Set a configuration value",
			Long: `Set a configuration value and save the configuration file.

Keys: ui.verbose, ui.color_scheme, log.level, output.format, search_paths.
search_paths takes a comma-separated list; an empty value clears it.`,
			Args: cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return setConfigValue(cmd, app, args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "dump",
			Short: "Output the effective configuration as CUE",
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := app.Config.Load(cmd.Context(), config.LoadOptions{ConfigFilePath: app.configFile})
				if err != nil {
					return app.fail(cmd, err)
				}
				fmt.Fprint(cmd.OutOrStdout(), config.GenerateCUE(cfg))
				return nil
			},
		},
	)

	return cfgCmd
}

func showConfig(cmd *cobra.Command, app *App) error {
	format, err := app.outputFormat(cmd)
	if err != nil {
		return err
	}

	cfg, path, err := app.Config.LoadWithSource(cmd.Context(), config.LoadOptions{ConfigFilePath: app.configFile})
	if err != nil {
		return app.fail(cmd, err)
	}

	return emit(cmd.OutOrStdout(), format, cfg, func(w io.Writer) {
		keyStyle := KeyStyle
		valueStyle := SuccessStyle

		fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
		fmt.Fprintln(w)

		if path != "" {
			fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), path)
		} else {
			fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
		}
		fmt.Fprintln(w)

		fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
		fmt.Fprintf(w, "  verbose: %s\n", valueStyle.Render(strconv.FormatBool(cfg.UI.Verbose)))
		fmt.Fprintf(w, "  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))

		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s:\n", keyStyle.Render("log"))
		fmt.Fprintf(w, "  level: %s\n", valueStyle.Render(cfg.Log.Level.String()))

		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s:\n", keyStyle.Render("search_paths"))
		if len(cfg.SearchPaths) == 0 {
			fmt.Fprintf(w, "  %s\n", SubtitleStyle.Render("(none configured)"))
		}
		for _, p := range cfg.SearchPaths {
			fmt.Fprintf(w, "  - %s\n", valueStyle.Render(p))
		}

		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s:\n", keyStyle.Render("output"))
		fmt.Fprintf(w, "  format: %s\n", valueStyle.Render(cfg.Output.Format.String()))
	})
}

func initConfig(cmd *cobra.Command) error {
	path, err := config.CreateDefaultConfig()
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Configuration file at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}

func showConfigPath(cmd *cobra.Command, app *App) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config directory: %s\n", cfgDir)
	if app.cfgPath != "" {
		fmt.Fprintf(out, "Config file: %s\n", app.cfgPath)
	} else {
		fmt.Fprintf(out, "Config file: %s %s\n", filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt),
			SubtitleStyle.Render("(not created)"))
	}
	return nil
}

func setConfigValue(cmd *cobra.Command, app *App, key, value string) error {
	cfg, err := app.Config.Load(cmd.Context(), config.LoadOptions{})
	if err != nil {
		return app.fail(cmd, err)
	}

	switch key {
	case "ui.verbose":
		verbose, parseErr := strconv.ParseBool(value)
		if parseErr != nil {
			return fmt.Errorf("invalid value for ui.verbose: %w", parseErr)
		}
		cfg.UI.Verbose = verbose
	case "ui.color_scheme":
		cfg.UI.ColorScheme = config.ColorScheme(value)
	case "log.level":
		cfg.Log.Level = config.LogLevel(value)
	case "output.format":
		cfg.Output.Format = config.OutputFormat(value)
	case "search_paths":
		cfg.SearchPaths = []string{}
		if value != "" {
			for p := range strings.SplitSeq(value, ",") {
				cfg.SearchPaths = append(cfg.SearchPaths, strings.TrimSpace(p))
			}
		}
	default:
		return app.fail(cmd, issue.NewErrorContext().
			WithOperation("set configuration value").
			WithResource(key).
			WithSuggestion("Valid keys: ui.verbose, ui.color_scheme, log.level, output.format, search_paths").
			Wrap(errUnknownConfigKey).
			BuildError())
	}

	if valid, errs := cfg.IsValid(); !valid {
		return errs[0]
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Set %s = %s\n", SuccessStyle.Render("✓"), key, value)
	return nil
}
