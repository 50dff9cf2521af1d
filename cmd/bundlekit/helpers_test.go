// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"debug/elf"
	"errors"
	"path/filepath"
	"testing"

	"github.com/fibyos/bundlekit/internal/config"
	"github.com/fibyos/bundlekit/internal/testutil"
	"github.com/fibyos/bundlekit/pkg/elfarch"
	"github.com/fibyos/bundlekit/pkg/platform"
)

const testInfoJSON = testutil.InfoJSON

// staticProvider is a config.Provider returning fixed values.
type staticProvider struct {
	cfg  *config.Config
	path string
	err  error
}

func (p *staticProvider) Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error) {
	cfg, _, err := p.LoadWithSource(ctx, opts)
	return cfg, err
}

func (p *staticProvider) LoadWithSource(context.Context, config.LoadOptions) (*config.Config, string, error) {
	if p.err != nil {
		return nil, "", p.err
	}
	if p.cfg == nil {
		return config.DefaultConfig(), p.path, nil
	}
	return p.cfg, p.path, nil
}

type cliResult struct {
	stdout string
	stderr string
	err    error
}

// runCLI executes the command tree with args. The executable defaults to a
// path outside any bundle.
func runCLI(t *testing.T, deps Dependencies, args ...string) cliResult {
	t.Helper()

	var stdout, stderr bytes.Buffer
	deps.Stdout = &stdout
	deps.Stderr = &stderr
	if deps.Config == nil {
		deps.Config = &staticProvider{}
	}
	if deps.Executable == nil {
		exe := filepath.Join(t.TempDir(), "bundlekit")
		deps.Executable = func() (string, error) { return exe, nil }
	}

	root := NewRootCommand(NewApp(deps))
	root.SetArgs(args)
	err := root.ExecuteContext(t.Context())

	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// exitCode returns the ExitError code of err, 0 for nil, or -1 for other errors.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return -1
}

// foreignMachine returns an ELF machine that differs from the host.
func foreignMachine() elf.Machine {
	if platform.HostArch() == elfarch.ARM64 {
		return elf.EM_X86_64
	}
	return elf.EM_AARCH64
}
