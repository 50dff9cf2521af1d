// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
	"testing"
)

// ELFHeader returns a header-only 64-bit little-endian ELF executable for
// machine. debug/elf accepts it as a file without sections or programs.
func ELFHeader(t testing.TB, machine elf.Machine) []byte {
	t.Helper()

	hdr := elf.Header64{
		Type:    uint16(elf.ET_EXEC),
		Machine: uint16(machine),
		Version: uint32(elf.EV_CURRENT),
		Ehsize:  64,
	}
	copy(hdr.Ident[:], elf.ELFMAG)
	hdr.Ident[elf.EI_CLASS] = byte(elf.ELFCLASS64)
	hdr.Ident[elf.EI_DATA] = byte(elf.ELFDATA2LSB)
	hdr.Ident[elf.EI_VERSION] = byte(elf.EV_CURRENT)

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, &hdr); err != nil {
		t.Fatalf("binary.Write: %v", err)
	}
	return buf.Bytes()
}
