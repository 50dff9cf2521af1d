// SPDX-License-Identifier: MPL-2.0

// Package testutil provides test fixtures for bundle directories, ELF
// executables and environment setup. Helpers fail the test immediately on
// setup errors so test bodies stay focused on behavior.
package testutil
