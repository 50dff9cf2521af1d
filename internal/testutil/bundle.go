// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"path/filepath"
	"testing"
)

// InfoJSON is a complete descriptor for a bundle named Notes whose entry
// point is Content/bin/notes.
const InfoJSON = `{
  "name": "Notes",
  "identifier": "org.fibyos.notes",
  "entry_point": "Content/bin/notes",
  "metadata": {"author": "fibyos"},
  "icons": {"icon_16": "", "icon_32": "", "icon_128": "", "launch_screen": ""},
  "platforms": ["linux"],
  "minimum_system_version": "1.0",
  "device_family": [],
  "entitlements": ["network", "files"],
  "url_schemes": [],
  "app_services": {"background_modes": []},
  "security": {
    "app_sandbox": true,
    "app_transport_security": {"allows_insecure_http": false, "exception_domains": {}},
    "code_signature": {"team_id": "", "entitlements_file": ""}
  },
  "fibyos": {"document_types": []}
}`

// NewBundle creates a structurally valid bundle directory at parent/name:
// Content/ holding an empty Config.json.
func NewBundle(t testing.TB, parent, name string) string {
	t.Helper()
	dir := filepath.Join(parent, name)
	MustWriteFile(t, filepath.Join(dir, "Content", "Config.json"), []byte("{}"))
	return dir
}

// NewBundleWithInfo creates a bundle like NewBundle and writes info as its
// Content/Info.json.
func NewBundleWithInfo(t testing.TB, parent, name, info string) string {
	t.Helper()
	dir := NewBundle(t, parent, name)
	WriteInfo(t, dir, info)
	return dir
}

// WriteInfo replaces the Info.json of the bundle at root.
func WriteInfo(t testing.TB, root, info string) {
	t.Helper()
	MustWriteFile(t, filepath.Join(root, "Content", "Info.json"), []byte(info))
}
