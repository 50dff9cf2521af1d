// SPDX-License-Identifier: MPL-2.0

package bundle

import "path/filepath"

// FindRoots returns every bundle directory enclosing start, nearest first.
//
// The walk begins at the parent of start (start itself is never examined) and
// moves upward. It stops before the file system root, which is never examined,
// and when a path has no further parent, as happens when a relative path
// reaches ".". Candidates found before the walk stops are kept.
func FindRoots(start string) []string {
	var found []string

	cur, ok := parentDir(start)
	for ok && !isFilesystemRoot(cur) {
		if IsBundle(cur) {
			found = append(found, cur)
		}
		cur, ok = parentDir(cur)
	}

	return found
}

// FindRoot returns the outermost bundle directory enclosing start.
// When bundles are nested, e.g. Host.appd/Content/Plugins/Sync.serviced/bin/sync,
// the result is Host.appd.
func FindRoot(start string) (string, bool) {
	found := FindRoots(start)
	if len(found) == 0 {
		return "", false
	}
	return found[len(found)-1], true
}

// parentDir returns the parent of p, or false if p has none.
func parentDir(p string) (string, bool) {
	if p == "" {
		return "", false
	}
	parent := filepath.Dir(p)
	if parent == p {
		return "", false
	}
	return parent, true
}

func isFilesystemRoot(p string) bool {
	return p == filepath.VolumeName(p)+string(filepath.Separator)
}
