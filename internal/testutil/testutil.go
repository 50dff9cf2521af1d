// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// MustMkdirAll creates the directory formed by joining elem, along with any
// necessary parents, and returns its path.
func MustMkdirAll(t testing.TB, elem ...string) string {
	t.Helper()
	dir := filepath.Join(elem...)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create directory %s: %v", dir, err)
	}
	return dir
}

// MustWriteFile writes data to path, creating parent directories. Files are
// executable so fixtures can stand in for entry points.
func MustWriteFile(t testing.TB, path string, data []byte) {
	t.Helper()
	MustMkdirAll(t, filepath.Dir(path))
	if err := os.WriteFile(path, data, 0o755); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
