// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fibyos/bundlekit/internal/config"
	"github.com/fibyos/bundlekit/internal/issue"
	"github.com/fibyos/bundlekit/pkg/elfarch"
	"github.com/fibyos/bundlekit/pkg/platform"
)

type (
	// archResult is the probe outcome of one file. Arch and Machine are set
	// exactly when Error is empty; machine code 0 is a valid result.
	archResult struct {
		Path        string                `json:"path" toml:"path"`
		Arch        *elfarch.Architecture `json:"arch,omitempty" toml:"arch,omitempty"`
		Machine     *uint16               `json:"machine,omitempty" toml:"machine,omitempty"`
		MatchesHost bool                  `json:"matches_host" toml:"matches_host"`
		Error       string                `json:"error,omitempty" toml:"error,omitempty"`
	}

	archReport struct {
		Host  elfarch.Architecture `json:"host" toml:"host"`
		Files []archResult         `json:"files" toml:"files"`
	}
)

func newArchCommand(app *App) *cobra.Command {
	var requireHost bool

	cmd := &cobra.Command{
		Use:   "arch <file>...",
		Short: "Print the CPU architecture of ELF executables",
		Long: `Read the ELF header of each file and print the target architecture.

Files that are not ELF are reported with their detected media type. The
command exits with status 1 when any file cannot be probed, or with
--require-host when any file targets another architecture than the host.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArch(cmd, app, args, requireHost)
		},
	}

	cmd.Flags().BoolVar(&requireHost, "require-host", false, "fail when a file does not target the host architecture")
	addFormatFlag(cmd)
	return cmd
}

func runArch(cmd *cobra.Command, app *App, files []string, requireHost bool) error {
	format, err := app.outputFormat(cmd)
	if err != nil {
		return err
	}

	host := platform.HostArch()
	report := archReport{Host: host, Files: make([]archResult, 0, len(files))}

	var failed, mismatched, notELF bool
	for _, path := range files {
		res := archResult{Path: path}
		arch, err := elfarch.Detect(path)
		if err != nil {
			res.Error = err.Error()
			failed = true
			notELF = notELF || errors.Is(err, elfarch.ErrParse)
			app.logger.Debug("probe failed", "path", path, "err", err)
		} else {
			code := arch.Code()
			res.Arch, res.Machine = &arch, &code
			res.MatchesHost = arch == host
			mismatched = mismatched || !res.MatchesHost
		}
		report.Files = append(report.Files, res)
	}

	if err := emit(cmd.OutOrStdout(), format, report, func(w io.Writer) {
		for _, res := range report.Files {
			switch {
			case res.Error != "":
				fmt.Fprintf(w, "%s %s %s\n", ErrorStyle.Render("✗"), PathStyle.Render(res.Path), res.Error)
			case res.MatchesHost:
				fmt.Fprintf(w, "%s %s %s\n", SuccessStyle.Render("✓"), PathStyle.Render(res.Path), *res.Arch)
			default:
				fmt.Fprintf(w, "%s %s %s %s\n", WarningStyle.Render("!"), PathStyle.Render(res.Path), *res.Arch,
					SubtitleStyle.Render(fmt.Sprintf("(host is %s)", host)))
			}
		}
	}); err != nil {
		return err
	}

	if !failed && !(requireHost && mismatched) {
		return nil
	}
	if format == config.OutputText {
		switch {
		case notELF:
			app.renderIssue(cmd.ErrOrStderr(), issue.Get(issue.NotELFId))
		case requireHost && mismatched:
			app.renderIssue(cmd.ErrOrStderr(), issue.Get(issue.ArchitectureMismatchId))
		}
	}
	cmd.SilenceErrors = true
	return &ExitError{Code: 1}
}
