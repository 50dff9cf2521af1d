// SPDX-License-Identifier: MPL-2.0

// Package entitlement defines the closed vocabulary of capabilities a bundle
// may request in the "entitlements" list of its Info.json descriptor.
//
// Every [Type] has exactly one canonical lowercase tag. Encoding a Type to its
// tag is total; decoding a tag with [Parse] is partial and fails with an
// [*UnknownError] for any tag outside the vocabulary. Tags are never coerced,
// case-folded or silently dropped.
//
// The vocabulary is fixed at build time. Adding a capability means adding a
// constant, its tag and its category in this package.
package entitlement
