// SPDX-License-Identifier: MPL-2.0

// Package config handles bundlekit configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/bundlekit/config.cue (or the XDG equivalent on
// Linux, ~/Library/Application Support/bundlekit/config.cue on macOS and
// %APPDATA%\bundlekit\config.cue on Windows). Environment variables prefixed with
// BUNDLEKIT_ override file values, e.g. BUNDLEKIT_LOG_LEVEL=debug.
//
// Configuration files are validated against an embedded CUE schema (config_schema.cue).
package config
