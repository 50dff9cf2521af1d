// SPDX-License-Identifier: MPL-2.0

package elfarch

import (
	"bytes"
	"debug/elf"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/gabriel-vasile/mimetype"
)

// Named architectures, keyed by their ELF e_machine code.
const (
	// X86 is 32-bit Intel x86 (EM_386).
	X86 = Architecture(elf.EM_386)
	// X86_64 is AMD64 (EM_X86_64).
	X86_64 = Architecture(elf.EM_X86_64)
	// ARM64 is 64-bit ARM (EM_AARCH64).
	ARM64 = Architecture(elf.EM_AARCH64)
	// ARM is 32-bit ARM (EM_ARM).
	ARM = Architecture(elf.EM_ARM)
)

var elfMagic = []byte(elf.ELFMAG)

// Architecture is the machine an ELF file targets. Values other than the named
// constants are valid and carry the raw e_machine code.
type Architecture uint16

// FromMachine maps a raw e_machine code to an Architecture.
func FromMachine(code uint16) Architecture {
	return Architecture(code)
}

// Code returns the raw e_machine code.
func (a Architecture) Code() uint16 { return uint16(a) }

// IsKnown reports whether a is one of the named architectures.
func (a Architecture) IsKnown() bool {
	switch a {
	case X86, X86_64, ARM64, ARM:
		return true
	default:
		return false
	}
}

// String returns a short architecture name, or "other(0x..)" for codes
// outside the named set.
func (a Architecture) String() string {
	switch a {
	case X86:
		return "x86"
	case X86_64:
		return "x86_64"
	case ARM64:
		return "arm64"
	case ARM:
		return "arm"
	default:
		return fmt.Sprintf("other(%#04x)", uint16(a))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a Architecture) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// Detect reads the file at path and returns the architecture recorded in its
// ELF header.
func Detect(path string) (Architecture, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, &IOError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	arch, err := decode(f, func() string {
		mt, mtErr := mimetype.DetectFile(path)
		if mtErr != nil {
			return ""
		}
		return mt.String()
	})
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return 0, &IOError{Path: path, Err: err}
		}
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			parseErr.Path = path
		}
		return 0, err
	}
	return arch, nil
}

// DetectBytes decodes the architecture from an in-memory ELF image.
func DetectBytes(data []byte) (Architecture, error) {
	return decode(bytes.NewReader(data), func() string {
		return mimetype.Detect(data).String()
	})
}

// IsX86_64 reports whether the ELF file at path targets x86_64.
func IsX86_64(path string) (bool, error) {
	return is(path, X86_64)
}

// IsArm64 reports whether the ELF file at path targets arm64.
func IsArm64(path string) (bool, error) {
	return is(path, ARM64)
}

func is(path string, want Architecture) (bool, error) {
	arch, err := Detect(path)
	if err != nil {
		return false, err
	}
	return arch == want, nil
}

// decode parses the ELF header from r. sniff is consulted only when the input
// does not carry the ELF magic, to name what it looks like instead.
func decode(r io.ReaderAt, sniff func() string) (Architecture, error) {
	var magic [len(elf.ELFMAG)]byte
	n, err := r.ReadAt(magic[:], 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, err
	}
	if !bytes.Equal(magic[:n], elfMagic) {
		reason := "not an ELF file"
		if mt := sniff(); mt != "" {
			reason = fmt.Sprintf("not an ELF file (detected %s)", mt)
		}
		return 0, &ParseError{Reason: reason}
	}

	ef, err := elf.NewFile(r)
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return 0, err
		}
		return 0, &ParseError{Reason: "malformed ELF header", Err: err}
	}
	defer func() { _ = ef.Close() }()

	return FromMachine(uint16(ef.Machine)), nil
}
