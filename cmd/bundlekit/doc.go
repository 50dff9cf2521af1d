// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for bundlekit.
//
// The root command loads configuration once, then each subcommand works on
// bundle directories through the pkg/bundle, pkg/bundleinfo and pkg/elfarch
// packages. Results print as styled text, JSON or TOML.
package cmd
