// SPDX-License-Identifier: MPL-2.0

// Package bundleinfo defines the Info.json descriptor carried by every bundle
// and decodes it against an embedded CUE schema.
//
// The descriptor is read from Content/Info.json inside the bundle root. All
// fields are required and unknown keys are rejected. Entitlement tags are
// decoded through the [entitlement] registry, so an unrecognized tag fails the
// whole document.
//
// Only the shape of the document is checked. Values such as identifiers,
// versions and URL schemes are accepted as written.
package bundleinfo
