// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"debug/elf"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestNewBundleWithInfo(t *testing.T) {
	t.Parallel()

	dir := NewBundleWithInfo(t, t.TempDir(), "Notes.appd", InfoJSON)

	info, err := os.Stat(filepath.Join(dir, "Content", "Config.json"))
	if err != nil || !info.Mode().IsRegular() {
		t.Fatalf("Config.json missing or not regular: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "Content", "Info.json"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != InfoJSON {
		t.Error("Info.json content mismatch")
	}
}

func TestELFHeader(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bin")
	MustWriteFile(t, path, ELFHeader(t, elf.EM_AARCH64))

	f, err := elf.Open(path)
	if err != nil {
		t.Fatalf("elf.Open: %v", err)
	}
	defer func() { _ = f.Close() }()

	if f.Machine != elf.EM_AARCH64 || f.Class != elf.ELFCLASS64 {
		t.Errorf("header = %v/%v, want EM_AARCH64/ELFCLASS64", f.Machine, f.Class)
	}
}

func TestSetHomeDir(t *testing.T) {
	dir := t.TempDir()
	SetHomeDir(t, dir)

	key := "HOME"
	if runtime.GOOS == "windows" {
		key = "USERPROFILE"
	}
	if got := os.Getenv(key); got != dir {
		t.Errorf("%s = %q, want %q", key, got, dir)
	}
}
