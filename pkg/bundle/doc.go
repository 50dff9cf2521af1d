// SPDX-License-Identifier: MPL-2.0

// Package bundle discovers and classifies application bundles and exposes the
// bundle context of the running process.
//
// A bundle is a directory whose name carries one of four kind suffixes and
// whose layout passes the structure check:
//
//	Notes.appd/             application   (.appd)
//	Sync.serviced/          service       (.serviced)
//	DevTools.toolsetd/      toolset       (.toolsetd)
//	UIKit.frameworkd/       framework     (.frameworkd)
//	  Content/              required directory
//	    Config.json         required marker file
//	    Info.json           descriptor, read by LoadInfo
//
// Name and structure are both required; a directory with the right suffix but
// without Content/Config.json is not a bundle.
//
// # Process context
//
// [Process] caches two values for its lifetime: the bundle root enclosing the
// executable, resolved on first use, and the descriptor loaded by
// [Process.LoadInfo]. The root is resolved at most once, whatever the outcome.
// The descriptor is loaded at most once successfully; later calls fail with
// [ErrAlreadyLoaded] and readers use [Process.LoadedInfo], which never loads.
//
// When bundles are nested, the outermost enclosing bundle is the root.
package bundle
