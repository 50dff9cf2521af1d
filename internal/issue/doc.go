// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing errors for the bundlekit CLI.
//
// ActionableError pairs a failed operation with remediation hints, and the
// issue catalog holds Markdown explanations rendered in the terminal with
// glamour.
package issue
