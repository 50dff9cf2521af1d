// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fibyos/bundlekit/internal/testutil"
	"github.com/fibyos/bundlekit/pkg/bundle"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	host := testutil.NewBundle(t, t.TempDir(), "Host.appd")
	plugin := testutil.NewBundle(t, filepath.Join(host, "Content", "Plugins"), "Sync.serviced")
	exe := filepath.Join(plugin, "bin", "sync")

	t.Run("outermost", func(t *testing.T) {
		t.Parallel()

		res := runCLI(t, Dependencies{}, "resolve", exe)
		if res.err != nil {
			t.Fatalf("unexpected error: %v", res.err)
		}
		if got := strings.TrimSpace(res.stdout); got != host {
			t.Errorf("stdout = %q, want %q", got, host)
		}
	})

	t.Run("all candidates", func(t *testing.T) {
		t.Parallel()

		res := runCLI(t, Dependencies{}, "resolve", "--all", "--format", "json", exe)
		if res.err != nil {
			t.Fatalf("unexpected error: %v", res.err)
		}
		var report resolveReport
		if err := json.Unmarshal([]byte(res.stdout), &report); err != nil {
			t.Fatalf("invalid JSON %q: %v", res.stdout, err)
		}
		if len(report.Candidates) != 2 || report.Candidates[0] != plugin || report.Candidates[1] != host {
			t.Errorf("candidates = %v, want [%s %s]", report.Candidates, plugin, host)
		}
		if report.Root != host {
			t.Errorf("root = %q, want %q", report.Root, host)
		}
	})

	t.Run("executable default", func(t *testing.T) {
		t.Parallel()

		deps := Dependencies{Executable: func() (string, error) { return exe, nil }}
		res := runCLI(t, deps, "resolve")
		if res.err != nil {
			t.Fatalf("unexpected error: %v", res.err)
		}
		if got := strings.TrimSpace(res.stdout); got != host {
			t.Errorf("stdout = %q, want %q", got, host)
		}
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		res := runCLI(t, Dependencies{}, "resolve", filepath.Join(t.TempDir(), "bin", "tool"))
		if exitCode(res.err) != 1 || !errors.Is(res.err, bundle.ErrRootNotFound) {
			t.Fatalf("err = %v, want exit 1 wrapping ErrRootNotFound", res.err)
		}
		if !strings.Contains(res.stderr, "Bundle root not found") {
			t.Errorf("stderr should explain the issue, got %q", res.stderr)
		}
	})

	t.Run("executable unavailable", func(t *testing.T) {
		t.Parallel()

		deps := Dependencies{Executable: func() (string, error) { return "", errors.New("no proc") }}
		res := runCLI(t, deps, "resolve")
		if !errors.Is(res.err, bundle.ErrIO) {
			t.Errorf("err = %v, want ErrIO", res.err)
		}
	})
}
