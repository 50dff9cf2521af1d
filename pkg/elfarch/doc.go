// SPDX-License-Identifier: MPL-2.0

// Package elfarch determines the CPU architecture an ELF executable was built
// for by reading the machine field of its header.
//
// The probe is stateless: every call reads and decodes the input anew. Machine
// codes outside the named set are not errors; they are reported as an
// [Architecture] whose [Architecture.IsKnown] is false and whose raw code is
// preserved.
package elfarch
