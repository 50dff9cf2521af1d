// SPDX-License-Identifier: MPL-2.0

// Package platform provides host facts used when checking bundles: the ELF
// architecture of the running binary, whether the host OS uses ELF, and which
// bundle names are not portable to Windows.
package platform
