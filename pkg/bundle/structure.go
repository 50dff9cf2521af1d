// SPDX-License-Identifier: MPL-2.0

package bundle

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fibyos/bundlekit/pkg/bundleinfo"
)

// HasValidStructure reports whether dir contains a Content directory holding a
// regular Config.json file. File system errors count as "no".
func HasValidStructure(dir string) bool {
	content, err := os.Stat(filepath.Join(dir, bundleinfo.ContentDir))
	if err != nil || !content.IsDir() {
		return false
	}
	marker, err := os.Stat(bundleinfo.ConfigPath(dir))
	if err != nil {
		return false
	}
	return marker.Mode().IsRegular()
}

// IsKind reports whether dir is a bundle of kind k: its name ends with the
// kind's suffix after a non-empty stem, and its structure is valid.
func IsKind(dir string, k Kind) bool {
	suffix := k.Suffix()
	if suffix == "" {
		return false
	}
	base := filepath.Base(dir)
	if !strings.HasSuffix(base, suffix) || base == suffix {
		return false
	}
	return HasValidStructure(dir)
}

// IsAppBundle reports whether dir is an application bundle.
func IsAppBundle(dir string) bool { return IsKind(dir, KindApplication) }

// IsServiceBundle reports whether dir is a service bundle.
func IsServiceBundle(dir string) bool { return IsKind(dir, KindService) }

// IsToolsetBundle reports whether dir is a toolset bundle.
func IsToolsetBundle(dir string) bool { return IsKind(dir, KindToolset) }

// IsFrameworkBundle reports whether dir is a framework bundle.
func IsFrameworkBundle(dir string) bool { return IsKind(dir, KindFramework) }

// IsBundle reports whether dir is a bundle of any kind.
func IsBundle(dir string) bool {
	_, ok := KindOf(dir)
	return ok
}

// KindOf classifies dir. The suffix selects at most one candidate kind, so the
// structure check runs at most once.
func KindOf(dir string) (Kind, bool) {
	base := filepath.Base(dir)
	k, ok := KindFromSuffix(filepath.Ext(base))
	if !ok || !IsKind(dir, k) {
		return "", false
	}
	return k, true
}

// Name returns the bundle name: the directory base name without its kind suffix.
// Directories without a kind suffix are returned unchanged.
func Name(dir string) string {
	base := filepath.Base(dir)
	if _, ok := KindFromSuffix(filepath.Ext(base)); ok {
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
	return base
}
