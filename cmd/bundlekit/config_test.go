// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fibyos/bundlekit/internal/config"
)

func TestConfigShow(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.SearchPaths = []string{"/opt/apps"}
	provider := &staticProvider{cfg: cfg, path: "/home/u/.config/bundlekit/config.cue"}

	t.Run("text", func(t *testing.T) {
		t.Parallel()

		res := runCLI(t, Dependencies{Config: provider}, "config", "show")
		if res.err != nil {
			t.Fatalf("unexpected error: %v", res.err)
		}
		for _, want := range []string{"Current Configuration", provider.path, "/opt/apps", "warn", "auto"} {
			if !strings.Contains(res.stdout, want) {
				t.Errorf("stdout missing %q:\n%s", want, res.stdout)
			}
		}
	})

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		res := runCLI(t, Dependencies{}, "config", "show")
		if res.err != nil {
			t.Fatalf("unexpected error: %v", res.err)
		}
		if !strings.Contains(res.stdout, "(using defaults)") || !strings.Contains(res.stdout, "(none configured)") {
			t.Errorf("stdout = %q", res.stdout)
		}
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		res := runCLI(t, Dependencies{Config: provider}, "config", "show", "--format", "json")
		if res.err != nil {
			t.Fatalf("unexpected error: %v", res.err)
		}
		var got config.Config
		if err := json.Unmarshal([]byte(res.stdout), &got); err != nil {
			t.Fatalf("invalid JSON %q: %v", res.stdout, err)
		}
		if len(got.SearchPaths) != 1 || got.Output.Format != config.OutputText {
			t.Errorf("decoded = %+v", got)
		}
	})

	t.Run("load failure", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("bad config")
		res := runCLI(t, Dependencies{Config: &staticProvider{err: boom}}, "config", "show")
		if exitCode(res.err) != 1 || !errors.Is(res.err, boom) {
			t.Errorf("err = %v, want exit 1 wrapping the load error", res.err)
		}
	})
}

func TestConfigDump(t *testing.T) {
	t.Parallel()

	res := runCLI(t, Dependencies{}, "config", "dump")
	if res.err != nil {
		t.Fatalf("unexpected error: %v", res.err)
	}
	if res.stdout != config.GenerateCUE(config.DefaultConfig()) {
		t.Errorf("stdout = %q", res.stdout)
	}
}

func TestConfigFileCommands(t *testing.T) {
	// Not parallel: SetConfigDirOverride mutates package-level state.
	dir := t.TempDir()
	t.Cleanup(config.SetConfigDirOverride(dir))
	cfgPath := filepath.Join(dir, "config.cue")

	t.Run("path", func(t *testing.T) {
		res := runCLI(t, Dependencies{}, "config", "path")
		if res.err != nil {
			t.Fatalf("unexpected error: %v", res.err)
		}
		if !strings.Contains(res.stdout, dir) || !strings.Contains(res.stdout, "(not created)") {
			t.Errorf("stdout = %q", res.stdout)
		}
	})

	t.Run("init", func(t *testing.T) {
		res := runCLI(t, Dependencies{}, "config", "init")
		if res.err != nil {
			t.Fatalf("unexpected error: %v", res.err)
		}
		if _, err := os.Stat(cfgPath); err != nil {
			t.Errorf("config file not created: %v", err)
		}
	})

	t.Run("set", func(t *testing.T) {
		tests := []struct {
			key, value string
			want       string
		}{
			{"log.level", "debug", `level: "debug"`},
			{"ui.color_scheme", "dark", `color_scheme: "dark"`},
			{"output.format", "json", `format: "json"`},
			{"ui.verbose", "true", "verbose:      true"},
			{"search_paths", "/opt/apps, /srv/apps", `"/srv/apps",`},
		}
		for _, tt := range tests {
			res := runCLI(t, Dependencies{}, "config", "set", tt.key, tt.value)
			if res.err != nil {
				t.Fatalf("set %s: unexpected error: %v", tt.key, res.err)
			}
			data, err := os.ReadFile(cfgPath)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(data), tt.want) {
				t.Errorf("after set %s, config missing %q:\n%s", tt.key, tt.want, data)
			}
		}
	})

	t.Run("set invalid", func(t *testing.T) {
		if res := runCLI(t, Dependencies{}, "config", "set", "log.level", "loud"); !errors.Is(res.err, config.ErrInvalidLogLevel) {
			t.Errorf("err = %v, want ErrInvalidLogLevel", res.err)
		}
		if res := runCLI(t, Dependencies{}, "config", "set", "ui.verbose", "maybe"); res.err == nil {
			t.Error("non-boolean ui.verbose should fail")
		}
		if res := runCLI(t, Dependencies{}, "config", "set", "theme", "x"); !errors.Is(res.err, errUnknownConfigKey) {
			t.Errorf("err = %v, want errUnknownConfigKey", res.err)
		}
	})
}
