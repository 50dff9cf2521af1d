// SPDX-License-Identifier: MPL-2.0

package bundle

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/fibyos/bundlekit/pkg/cueutil"
	"github.com/fibyos/bundlekit/pkg/entitlement"
)

func TestProcess_Root_Cached(t *testing.T) {
	t.Parallel()

	root := makeBundle(t, t.TempDir(), "Notes.appd")
	exe := filepath.Join(root, "notes")

	var calls atomic.Int32
	p := NewProcess(
		WithExecutable(func() (string, error) {
			calls.Add(1)
			return exe, nil
		}),
		WithLogger(log.New(io.Discard)),
	)

	for range 3 {
		got, err := p.Root()
		if err != nil {
			t.Fatalf("Root() unexpected error: %v", err)
		}
		if got != root {
			t.Errorf("Root() = %q, want %q", got, root)
		}
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("executable looked up %d times, want 1", n)
	}
}

func TestProcess_Root_NotFoundIsCached(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	p := testProcess(filepath.Join(base, "Notes.appd", "notes"))

	if _, err := p.Root(); !errors.Is(err, ErrRootNotFound) {
		t.Fatalf("Root() err = %v, want ErrRootNotFound", err)
	}

	// A bundle appearing later is not picked up by the same Process.
	makeBundle(t, base, "Notes.appd")
	if _, err := p.Root(); !errors.Is(err, ErrRootNotFound) {
		t.Errorf("second Root() err = %v, want cached ErrRootNotFound", err)
	}

	launched, err := p.IsLaunchedFromBundle()
	if err != nil || launched {
		t.Errorf("IsLaunchedFromBundle() = %v, %v; want false, nil", launched, err)
	}
}

func TestProcess_Root_ExecutableError(t *testing.T) {
	t.Parallel()

	boom := errors.New("no /proc")
	p := NewProcess(
		WithExecutable(func() (string, error) { return "", boom }),
		WithLogger(log.New(io.Discard)),
	)

	_, err := p.Root()
	if !errors.Is(err, ErrIO) || !errors.Is(err, boom) {
		t.Fatalf("Root() err = %v, want ErrIO wrapping cause", err)
	}

	launched, err := p.IsLaunchedFromBundle()
	if err == nil || launched {
		t.Errorf("IsLaunchedFromBundle() = %v, %v; want false, error", launched, err)
	}
}

func TestProcess_IsLaunchedFromBundle(t *testing.T) {
	t.Parallel()

	root := makeBundle(t, t.TempDir(), "Notes.appd")
	p := testProcess(filepath.Join(root, "notes"))

	launched, err := p.IsLaunchedFromBundle()
	if err != nil || !launched {
		t.Errorf("IsLaunchedFromBundle() = %v, %v; want true, nil", launched, err)
	}
}

func TestProcess_WithRoot_Nested(t *testing.T) {
	t.Parallel()

	host := makeBundle(t, t.TempDir(), "Host.appd")
	writeInfo(t, host, testInfoJSON)
	plugin := makeBundle(t, filepath.Join(host, "Content", "Plugins"), "Sync.serviced")
	writeInfo(t, plugin, strings.Replace(testInfoJSON, `"org.fibyos.notes"`, `"org.fibyos.sync"`, 1))

	p := NewProcess(
		WithRoot(plugin),
		WithExecutable(func() (string, error) {
			t.Error("executable looked up despite a fixed root")
			return "", errors.New("unused")
		}),
		WithLogger(log.New(io.Discard)),
	)

	root, err := p.Root()
	if err != nil || root != plugin {
		t.Fatalf("Root() = %q, %v; want %q", root, err, plugin)
	}
	info, err := p.LoadInfo()
	if err != nil {
		t.Fatalf("LoadInfo() unexpected error: %v", err)
	}
	if info.Identifier != "org.fibyos.sync" {
		t.Errorf("Identifier = %q, want org.fibyos.sync", info.Identifier)
	}

	// Without a fixed root the walk from inside Sync.serviced finds the host.
	outer, err := testProcess(filepath.Join(plugin, "Content", "bin", "sync")).Root()
	if err != nil || outer != host {
		t.Errorf("Root() from inside Sync.serviced = %q, %v; want %q", outer, err, host)
	}
}

func TestProcess_LoadInfo_Once(t *testing.T) {
	t.Parallel()

	root := makeBundle(t, t.TempDir(), "Notes.appd")
	writeInfo(t, root, testInfoJSON)
	p := testProcess(filepath.Join(root, "notes"))

	if _, err := p.LoadedInfo(); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("LoadedInfo() before load err = %v, want ErrNotLoaded", err)
	}

	info, err := p.LoadInfo()
	if err != nil {
		t.Fatalf("LoadInfo() unexpected error: %v", err)
	}
	if info.Identifier != "org.fibyos.notes" {
		t.Errorf("Identifier = %q", info.Identifier)
	}
	if !info.HasEntitlement(entitlement.Network) {
		t.Error("expected network entitlement")
	}

	if _, err := p.LoadInfo(); !errors.Is(err, ErrAlreadyLoaded) {
		t.Errorf("second LoadInfo() err = %v, want ErrAlreadyLoaded", err)
	}

	loaded, err := p.LoadedInfo()
	if err != nil {
		t.Fatalf("LoadedInfo() unexpected error: %v", err)
	}
	if loaded != info {
		t.Error("LoadedInfo() returned a different descriptor than LoadInfo()")
	}
}

func TestProcess_LoadInfo_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		setup    func(t *testing.T) string
		wantKind error
	}{
		{
			name: "missing Info.json",
			setup: func(t *testing.T) string {
				t.Helper()
				return filepath.Join(makeBundle(t, t.TempDir(), "Notes.appd"), "notes")
			},
			wantKind: ErrNotFound,
		},
		{
			name: "malformed Info.json",
			setup: func(t *testing.T) string {
				t.Helper()
				root := makeBundle(t, t.TempDir(), "Notes.appd")
				writeInfo(t, root, `{"name": `)
				return filepath.Join(root, "notes")
			},
			wantKind: ErrInvalidFormat,
		},
		{
			name: "unknown entitlement",
			setup: func(t *testing.T) string {
				t.Helper()
				root := makeBundle(t, t.TempDir(), "Notes.appd")
				writeInfo(t, root, replaceOnce(t, testInfoJSON, `"files"`, `"not_a_real_tag"`))
				return filepath.Join(root, "notes")
			},
			wantKind: ErrInvalidFormat,
		},
		{
			name: "no bundle root",
			setup: func(t *testing.T) string {
				t.Helper()
				return filepath.Join(t.TempDir(), "notes")
			},
			wantKind: ErrInvalidFormat,
		},
		{
			name: "Info.json is a directory",
			setup: func(t *testing.T) string {
				t.Helper()
				root := makeBundle(t, t.TempDir(), "Notes.appd")
				mkdirs(t, root, "Content", "Info.json")
				return filepath.Join(root, "notes")
			},
			wantKind: ErrIO,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := testProcess(tt.setup(t))
			_, err := p.LoadInfo()
			if !errors.Is(err, tt.wantKind) {
				t.Fatalf("LoadInfo() err = %v, want %v", err, tt.wantKind)
			}
			var loadErr *LoadError
			if !errors.As(err, &loadErr) {
				t.Fatalf("LoadInfo() err = %T, want *LoadError", err)
			}
			if _, err := p.LoadedInfo(); !errors.Is(err, ErrNotLoaded) {
				t.Errorf("failed load must not populate the cache; LoadedInfo() err = %v", err)
			}
		})
	}
}

func TestProcess_LoadInfo_SizeCap(t *testing.T) {
	t.Parallel()

	root := makeBundle(t, t.TempDir(), "Notes.appd")
	writeInfo(t, root, testInfoJSON+strings.Repeat(" ", int(cueutil.DefaultMaxFileSize)))

	_, err := testProcess(filepath.Join(root, "notes")).LoadInfo()
	if !errors.Is(err, ErrInvalidFormat) || !errors.Is(err, cueutil.ErrFileTooLarge) {
		t.Errorf("LoadInfo() err = %v, want ErrInvalidFormat wrapping ErrFileTooLarge", err)
	}
}

func TestProcess_LoadInfo_InvalidFormatKeepsCause(t *testing.T) {
	t.Parallel()

	root := makeBundle(t, t.TempDir(), "Notes.appd")
	writeInfo(t, root, replaceOnce(t, testInfoJSON, `"files"`, `"not_a_real_tag"`))
	p := testProcess(filepath.Join(root, "notes"))

	_, err := p.LoadInfo()
	if !errors.Is(err, cueutil.ErrDecode) {
		t.Errorf("err = %v, want it to wrap cueutil.ErrDecode", err)
	}
	if !errors.Is(err, entitlement.ErrUnknown) {
		t.Errorf("err = %v, want it to wrap entitlement.ErrUnknown", err)
	}
}

func TestProcess_LoadInfo_RetryAfterFailure(t *testing.T) {
	t.Parallel()

	root := makeBundle(t, t.TempDir(), "Notes.appd")
	p := testProcess(filepath.Join(root, "notes"))

	if _, err := p.LoadInfo(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("first LoadInfo() err = %v, want ErrNotFound", err)
	}

	writeInfo(t, root, testInfoJSON)
	if _, err := p.LoadInfo(); err != nil {
		t.Fatalf("LoadInfo() after fixing Info.json: %v", err)
	}
}

func TestProcess_LoadInfo_Concurrent(t *testing.T) {
	t.Parallel()

	root := makeBundle(t, t.TempDir(), "Notes.appd")
	writeInfo(t, root, testInfoJSON)
	p := testProcess(filepath.Join(root, "notes"))

	const workers = 16
	var (
		wg        sync.WaitGroup
		successes atomic.Int32
		already   atomic.Int32
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := p.LoadInfo()
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, ErrAlreadyLoaded):
				already.Add(1)
			default:
				t.Errorf("LoadInfo() unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if successes.Load() != 1 {
		t.Errorf("successful loads = %d, want 1", successes.Load())
	}
	if already.Load() != workers-1 {
		t.Errorf("ErrAlreadyLoaded = %d, want %d", already.Load(), workers-1)
	}
}

func TestLoadError_Message(t *testing.T) {
	t.Parallel()

	cause := os.ErrPermission
	err := &LoadError{Kind: ErrIO, Path: "/b/Content/Info.json", Err: cause}
	want := "bundle I/O error: /b/Content/Info.json: " + cause.Error()
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	if got := (&LoadError{Kind: ErrNotLoaded}).Error(); got != ErrNotLoaded.Error() {
		t.Errorf("Error() = %q, want %q", got, ErrNotLoaded.Error())
	}
}

func TestCurrent_Singleton(t *testing.T) {
	t.Parallel()

	if Current() != Current() {
		t.Error("Current() returned different instances")
	}
}

func replaceOnce(t *testing.T, s, old, replacement string) string {
	t.Helper()
	if !strings.Contains(s, old) {
		t.Fatalf("fixture does not contain %q", old)
	}
	return strings.Replace(s, old, replacement, 1)
}
