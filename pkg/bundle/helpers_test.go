// SPDX-License-Identifier: MPL-2.0

package bundle

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/fibyos/bundlekit/internal/testutil"
)

const testInfoJSON = testutil.InfoJSON

// makeBundle creates a structurally valid bundle directory at parent/name.
func makeBundle(t *testing.T, parent, name string) string {
	t.Helper()
	return testutil.NewBundle(t, parent, name)
}

// writeInfo writes an Info.json into the bundle at root.
func writeInfo(t *testing.T, root, content string) {
	t.Helper()
	testutil.WriteInfo(t, root, content)
}

// mkdirs creates a directory tree and returns its path.
func mkdirs(t *testing.T, elem ...string) string {
	t.Helper()
	return testutil.MustMkdirAll(t, elem...)
}

// testProcess returns a Process whose executable is exe and whose logs are discarded.
func testProcess(exe string) *Process {
	return NewProcess(WithExecutablePath(exe), WithLogger(log.New(io.Discard)))
}
