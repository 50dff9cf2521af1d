// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"strings"
)

// windowsForbiddenChars may not appear in a Windows file name.
const windowsForbiddenChars = `<>:"/\|?*`

// windowsReservedNames are device names Windows reserves regardless of extension.
var windowsReservedNames = map[string]struct{}{
	"CON": {}, "PRN": {}, "AUX": {}, "NUL": {},
	"COM1": {}, "COM2": {}, "COM3": {}, "COM4": {}, "COM5": {},
	"COM6": {}, "COM7": {}, "COM8": {}, "COM9": {},
	"LPT1": {}, "LPT2": {}, "LPT3": {}, "LPT4": {}, "LPT5": {},
	"LPT6": {}, "LPT7": {}, "LPT8": {}, "LPT9": {},
}

// IsWindowsReservedName reports whether name, ignoring case and any extension,
// is a Windows device name such as CON or LPT1.
func IsWindowsReservedName(name string) bool {
	stem, _, _ := strings.Cut(strings.ToUpper(name), ".")
	_, reserved := windowsReservedNames[stem]
	return reserved
}

// PortableNameProblem returns why name cannot be used as a file name on every
// supported OS, or "" when it can.
func PortableNameProblem(name string) string {
	switch {
	case name == "":
		return "name is empty"
	case IsWindowsReservedName(name):
		return "name is a reserved device name on Windows"
	case strings.ContainsAny(name, windowsForbiddenChars):
		return "name contains a character Windows does not allow"
	case strings.HasSuffix(name, ".") || strings.HasSuffix(name, " "):
		return "name ends with a dot or space"
	}
	for _, r := range name {
		if r < 0x20 {
			return "name contains a control character"
		}
	}
	return ""
}
