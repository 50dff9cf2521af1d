// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fibyos/bundlekit/internal/config"
	"github.com/fibyos/bundlekit/internal/testutil"
	"github.com/fibyos/bundlekit/pkg/bundle"
)

func decodeList(t *testing.T, out string) []bundle.Found {
	t.Helper()
	var report listReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	return report.Bundles
}

func TestList(t *testing.T) {
	t.Parallel()

	dirA := t.TempDir()
	dirB := t.TempDir()
	notes := testutil.NewBundle(t, dirA, "Notes.appd")
	testutil.NewBundle(t, filepath.Join(notes, "Content", "Plugins"), "Nested.serviced")
	tools := testutil.NewBundle(t, filepath.Join(dirB, "opt"), "Tools.toolsetd")

	t.Run("arguments", func(t *testing.T) {
		t.Parallel()

		res := runCLI(t, Dependencies{}, "list", "--format", "json", dirA, dirB)
		if res.err != nil {
			t.Fatalf("unexpected error: %v", res.err)
		}
		found := decodeList(t, res.stdout)
		if len(found) != 2 || found[0].Path != notes || found[1].Path != tools {
			t.Errorf("found = %+v, want [%s %s]", found, notes, tools)
		}
	})

	t.Run("kind filter", func(t *testing.T) {
		t.Parallel()

		res := runCLI(t, Dependencies{}, "list", "-o", "json", "--kind", "toolset", dirA, dirB)
		if res.err != nil {
			t.Fatalf("unexpected error: %v", res.err)
		}
		found := decodeList(t, res.stdout)
		if len(found) != 1 || found[0].Kind != bundle.KindToolset {
			t.Errorf("found = %+v, want only the toolset", found)
		}
	})

	t.Run("invalid kind", func(t *testing.T) {
		t.Parallel()

		res := runCLI(t, Dependencies{}, "list", "--kind", "plugin", dirA)
		if !errors.Is(res.err, bundle.ErrInvalidKind) {
			t.Errorf("err = %v, want ErrInvalidKind", res.err)
		}
	})

	t.Run("search paths", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.SearchPaths = []string{dirB}
		res := runCLI(t, Dependencies{Config: &staticProvider{cfg: cfg}}, "list")
		if res.err != nil {
			t.Fatalf("unexpected error: %v", res.err)
		}
		if !strings.Contains(res.stdout, tools) || strings.Contains(res.stdout, notes) {
			t.Errorf("stdout = %q, want only %s", res.stdout, tools)
		}
	})

	t.Run("missing directory is skipped", func(t *testing.T) {
		t.Parallel()

		res := runCLI(t, Dependencies{}, "list", filepath.Join(dirA, "missing"), dirB)
		if res.err != nil {
			t.Fatalf("unexpected error: %v", res.err)
		}
		if !strings.Contains(res.stdout, tools) {
			t.Errorf("stdout = %q, want %s", res.stdout, tools)
		}
		if !strings.Contains(res.stderr, "skipping directory") {
			t.Errorf("stderr = %q, want a skip warning", res.stderr)
		}
	})

	t.Run("nothing found", func(t *testing.T) {
		t.Parallel()

		res := runCLI(t, Dependencies{}, "list", t.TempDir())
		if res.err != nil {
			t.Fatalf("unexpected error: %v", res.err)
		}
		if !strings.Contains(res.stdout, "No bundles found") {
			t.Errorf("stdout = %q", res.stdout)
		}
	})
}

func TestList_NoSearchPaths(t *testing.T) {
	t.Parallel()

	res := runCLI(t, Dependencies{}, "list")
	if exitCode(res.err) != 1 || !errors.Is(res.err, errNoSearchPaths) {
		t.Fatalf("err = %v, want exit 1 wrapping errNoSearchPaths", res.err)
	}
	if !strings.Contains(res.stderr, "search_paths") {
		t.Errorf("stderr = %q, want a search_paths suggestion", res.stderr)
	}
}
