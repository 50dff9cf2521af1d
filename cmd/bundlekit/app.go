// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/fibyos/bundlekit/internal/config"
	"github.com/fibyos/bundlekit/internal/issue"
	"github.com/fibyos/bundlekit/pkg/bundle"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: every Cobra command handler receives an App
	// reference and reaches configuration, output and bundle contexts
	// through it.
	App struct {
		Config     config.Provider
		executable func() (string, error)
		stdout     io.Writer
		stderr     io.Writer
		logger     *log.Logger

		// Set by the root command's persistent flags.
		verbose    bool
		configFile string

		// Populated by loadConfig before any subcommand runs.
		cfg     *config.Config
		cfgPath string
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		// Executable returns the path bundle contexts start from when a
		// command is given no path argument.
		Executable func() (string, error)
		Stdout     io.Writer
		Stderr     io.Writer
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Executable == nil {
		deps.Executable = os.Executable
	}

	return &App{
		Config:     deps.Config,
		executable: deps.Executable,
		stdout:     deps.Stdout,
		stderr:     deps.Stderr,
		logger: log.NewWithOptions(deps.Stderr, log.Options{
			Prefix: config.AppName,
			Level:  log.WarnLevel,
		}),
		cfg: config.DefaultConfig(),
	}
}

// loadConfig loads configuration and applies its UI and log settings.
// A configuration that fails to load is reported as a warning and the
// defaults stay in effect.
func (a *App) loadConfig(ctx context.Context) {
	cfg, path, err := a.Config.LoadWithSource(ctx, config.LoadOptions{ConfigFilePath: a.configFile})
	if err != nil {
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, a.verbose))
		cfg = config.DefaultConfig()
		path = ""
	}
	a.cfg = cfg
	a.cfgPath = path

	if !a.verbose {
		a.verbose = cfg.UI.Verbose
	}
	if a.verbose {
		a.logger.SetLevel(log.DebugLevel)
	} else {
		a.logger.SetLevel(cfg.Log.Level.Level())
	}
	applyColorScheme(cfg.UI.ColorScheme)

	if path != "" {
		a.logger.Debug("configuration loaded", "path", path)
	}
}

// process returns the bundle context of this executable.
func (a *App) process() *bundle.Process {
	return bundle.NewProcess(
		bundle.WithExecutable(a.executable),
		bundle.WithLogger(a.logger.WithPrefix("bundle")),
	)
}

// processAt returns a bundle context for path. A bundle directory is its own
// root, even when nested inside another bundle; any other path is treated
// like an executable and the outermost enclosing bundle is searched for.
func (a *App) processAt(path string) (*bundle.Process, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("open bundle").
			WithResource(path).
			WithIssue(issue.NotABundleId).
			WithSuggestion("Verify the path is correct").
			Wrap(err).
			BuildError()
	}

	located := bundle.WithExecutablePath(abs)
	if bundle.IsBundle(abs) {
		located = bundle.WithRoot(abs)
	}
	return bundle.NewProcess(located, bundle.WithLogger(a.logger.WithPrefix("bundle"))), nil
}

// processFor returns processAt(args[0]) or, without arguments, the context
// of this executable.
func (a *App) processFor(args []string) (*bundle.Process, error) {
	if len(args) == 0 {
		return a.process(), nil
	}
	return a.processAt(args[0])
}

// glamourStyle returns the Markdown style for issue rendering.
func (a *App) glamourStyle() string {
	return glamourStyle(a.cfg.UI.ColorScheme)
}

// renderIssue prints the catalog explanation of entry to w. Rendering
// failures fall back to the plain title.
func (a *App) renderIssue(w io.Writer, entry *issue.Issue) {
	if entry == nil {
		return
	}
	out, err := entry.Render(a.glamourStyle())
	if err != nil {
		a.logger.Debug("issue rendering failed", "id", entry.Id(), "err", err)
		fmt.Fprintln(w, WarningStyle.Render(entry.Title()))
		return
	}
	fmt.Fprint(w, out)
}

// fail prints err to the command's stderr, explains it when it links a
// catalog issue, and returns an ExitError with code 1. The error is already
// printed, so cobra is told not to print it again.
func (a *App) fail(cmd *cobra.Command, err error) error {
	stderr := cmd.ErrOrStderr()
	fmt.Fprintln(stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, a.verbose))
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		a.renderIssue(stderr, ae.Issue())
	}
	cmd.SilenceErrors = true
	return &ExitError{Code: 1, Err: err}
}

// formatErrorForDisplay formats an error for user display.
// ActionableErrors use their Format method; verbose mode shows the full chain.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}
