// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"runtime"
	"sync"

	"github.com/fibyos/bundlekit/pkg/elfarch"
)

// GOOS values with a non-ELF executable format.
const (
	Windows = "windows"
	Darwin  = "darwin"
)

// hostArch caches the host architecture for the lifetime of the process.
//
// INVARIANT: ArchFromGOARCH MUST NOT panic; sync.OnceValue re-raises a panic
// on every call.
var hostArch = sync.OnceValue(func() elfarch.Architecture {
	arch, _ := ArchFromGOARCH(runtime.GOARCH)
	return arch
})

// HostArch returns the ELF architecture matching the running binary.
// On a GOARCH with no ELF mapping it returns code 0 (EM_NONE).
func HostArch() elfarch.Architecture {
	return hostArch()
}

// ArchFromGOARCH maps a Go architecture name to the ELF architecture it emits.
// This is a pure function that does not depend on cached detection state.
func ArchFromGOARCH(goarch string) (elfarch.Architecture, bool) {
	switch goarch {
	case "amd64":
		return elfarch.X86_64, true
	case "arm64":
		return elfarch.ARM64, true
	case "386":
		return elfarch.X86, true
	case "arm":
		return elfarch.ARM, true
	default:
		return elfarch.FromMachine(0), false
	}
}

// UsesELF reports whether executables on goos are ELF files.
func UsesELF(goos string) bool {
	switch goos {
	case Windows, Darwin:
		return false
	default:
		return true
	}
}

// HostUsesELF reports whether executables on the running OS are ELF files.
func HostUsesELF() bool {
	return UsesELF(runtime.GOOS)
}
