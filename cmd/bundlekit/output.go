// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/fibyos/bundlekit/internal/config"
)

const formatFlag = "format"

// addFormatFlag registers --format on cmd. An empty value means the
// configured output.format.
func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().StringP(formatFlag, "o", "", "output format: text, json or toml (default from config)")
}

// outputFormat resolves the --format flag of cmd against the configuration.
func (a *App) outputFormat(cmd *cobra.Command) (config.OutputFormat, error) {
	value, _ := cmd.Flags().GetString(formatFlag)
	if value == "" {
		return a.cfg.Output.Format, nil
	}
	format := config.OutputFormat(value)
	if ok, errs := format.IsValid(); !ok {
		return "", errs[0]
	}
	return format, nil
}

// emit writes v in format. Text output is delegated to text; v must be a
// struct so that TOML has a top-level table.
func emit(w io.Writer, format config.OutputFormat, v any, text func(io.Writer)) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
	case config.OutputTOML:
		if err := toml.NewEncoder(w).Encode(v); err != nil {
			return fmt.Errorf("failed to encode TOML: %w", err)
		}
	default:
		text(w)
	}
	return nil
}
