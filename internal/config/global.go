// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride replaces the platform config directory when non-empty.
var configDirOverride string

// SetConfigDirOverride makes ConfigDir return dir until the returned restore
// function is called. It is not safe for concurrent use; tests calling it must
// not run in parallel.
func SetConfigDirOverride(dir string) (restore func()) {
	previous := configDirOverride
	configDirOverride = dir
	return func() { configDirOverride = previous }
}
