// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fibyos/bundlekit/internal/config"
	"github.com/fibyos/bundlekit/internal/issue"
	"github.com/fibyos/bundlekit/pkg/bundle"
	"github.com/fibyos/bundlekit/pkg/platform"
)

type (
	validateOptions struct {
		checkArch bool
	}

	// validateReport is the serialized form of a bundle.ValidationResult.
	validateReport struct {
		Root     string   `json:"root" toml:"root"`
		IsValid  bool     `json:"is_valid" toml:"is_valid"`
		Message  string   `json:"message" toml:"message"`
		Warnings []string `json:"warnings" toml:"warnings"`
		Errors   []string `json:"errors" toml:"errors"`
	}
)

func newValidateCommand(app *App) *cobra.Command {
	var opts validateOptions

	cmd := &cobra.Command{
		Use:   "validate [path]",
		Short: "Validate a bundle",
		Long: `Load the descriptor of a bundle and run the validation rules against it.

Identity fields must be non-empty and the bundle name should be portable
across operating systems. With --check-arch the entry point is probed and
compared with the host architecture; a mismatch is a warning.

A bundle directory path is validated as is; a file path selects the outermost
bundle enclosing it. Without a path the bundle enclosing the bundlekit
executable is validated.
The command exits with status 1 when the bundle is invalid.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, app, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.checkArch, "check-arch", false, "compare the entry point architecture with the host")
	addFormatFlag(cmd)
	return cmd
}

// validationRules returns the rules the CLI runs.
func validationRules(opts validateOptions) []bundle.Rule {
	rules := []bundle.Rule{
		bundle.RequiredFieldsRule(),
		bundle.PortableNameRule(),
	}
	if opts.checkArch && platform.HostUsesELF() {
		rules = append(rules, bundle.EntryPointArchitectureRule(platform.HostArch()))
	}
	return rules
}

func runValidate(cmd *cobra.Command, app *App, args []string, opts validateOptions) error {
	format, err := app.outputFormat(cmd)
	if err != nil {
		return err
	}

	proc, err := app.processFor(args)
	if err != nil {
		return app.fail(cmd, err)
	}
	if _, err := proc.LoadInfo(); err != nil {
		return app.fail(cmd, loadFailure(err))
	}
	if opts.checkArch && !platform.HostUsesELF() {
		app.logger.Warn("host does not use ELF executables, skipping architecture check")
	}

	result, err := proc.Validate(validationRules(opts)...)
	if err != nil {
		return app.fail(cmd, issue.WrapWithContext(err, "validate bundle", ""))
	}
	root, _ := proc.Root()

	report := validateReport{
		Root:     root,
		IsValid:  result.IsValid,
		Message:  result.Message,
		Warnings: result.Warnings,
		Errors:   make([]string, len(result.Errors)),
	}
	for i, e := range result.Errors {
		report.Errors[i] = e.Error()
	}

	if err := emit(cmd.OutOrStdout(), format, report, func(w io.Writer) {
		printValidation(w, report)
	}); err != nil {
		return err
	}

	if !result.IsValid {
		if format == config.OutputText {
			app.renderIssue(cmd.ErrOrStderr(), issue.Get(issue.ValidationFailedId))
		}
		cmd.SilenceErrors = true
		return &ExitError{Code: 1, Err: result.Err()}
	}
	return nil
}

func printValidation(w io.Writer, report validateReport) {
	fmt.Fprintln(w, TitleStyle.Render("Bundle Validation"))
	fmt.Fprintf(w, "Path: %s\n\n", PathStyle.Render(report.Root))

	for _, e := range report.Errors {
		fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("✗"), e)
	}
	for _, warning := range report.Warnings {
		fmt.Fprintf(w, "%s %s\n", WarningStyle.Render("!"), warning)
	}
	if len(report.Errors)+len(report.Warnings) > 0 {
		fmt.Fprintln(w)
	}

	if report.IsValid {
		fmt.Fprintln(w, SuccessStyle.Render("✓ "+report.Message))
	} else {
		fmt.Fprintln(w, ErrorStyle.Render("✗ "+report.Message))
	}
}
