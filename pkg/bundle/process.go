// SPDX-License-Identifier: MPL-2.0

package bundle

import (
	"errors"
	"io/fs"
	"os"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/fibyos/bundlekit/pkg/bundleinfo"
	"github.com/fibyos/bundlekit/pkg/cueutil"
)

// current is the process-wide context used by the package-level helpers.
var current = sync.OnceValue(func() *Process {
	return NewProcess()
})

type (
	// Process holds the bundle context of one running executable: its
	// resolved bundle root and its loaded descriptor. Both are write-once.
	// A Process is safe for concurrent use.
	Process struct {
		executable func() (string, error)
		logger     *log.Logger

		// resolve computes the root; root runs it once and replays the first
		// outcome, including not-found and errors.
		resolve func() (string, error)
		root    func() (string, error)

		// loadMu serializes LoadInfo so exactly one load can succeed.
		loadMu sync.Mutex
		info   atomic.Pointer[bundleinfo.Info]
	}

	// Option configures a Process.
	Option func(*Process)
)

// NewProcess creates a Process. By default the executable path comes from
// os.Executable and diagnostics go to stderr at warn level.
func NewProcess(opts ...Option) *Process {
	p := &Process{
		executable: os.Executable,
		logger: log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "bundle",
			Level:  log.WarnLevel,
		}),
	}
	p.resolve = p.resolveRoot
	for _, opt := range opts {
		opt(p)
	}
	p.root = sync.OnceValues(p.resolve)
	return p
}

// WithExecutable overrides how the executable path is obtained.
func WithExecutable(fn func() (string, error)) Option {
	return func(p *Process) {
		p.executable = fn
	}
}

// WithExecutablePath fixes the executable path.
func WithExecutablePath(path string) Option {
	return WithExecutable(func() (string, error) { return path, nil })
}

// WithRoot fixes the bundle root to dir instead of searching upward from the
// executable. Nested bundles keep dir as their root.
func WithRoot(dir string) Option {
	return func(p *Process) {
		p.resolve = func() (string, error) {
			p.logger.Debug("bundle root pinned", "root", dir)
			return dir, nil
		}
	}
}

// WithLogger sets the logger used for debug diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(p *Process) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Current returns the process-wide Process.
func Current() *Process {
	return current()
}

// Root returns the outermost bundle enclosing the executable. The first call
// resolves it; every later call returns the same outcome. When no bundle
// encloses the executable the error wraps ErrRootNotFound.
func (p *Process) Root() (string, error) {
	return p.root()
}

// IsLaunchedFromBundle reports whether the executable lives inside a bundle.
// Only failures other than "no enclosing bundle" are returned as errors.
func (p *Process) IsLaunchedFromBundle() (bool, error) {
	_, err := p.Root()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrRootNotFound):
		return false, nil
	default:
		return false, err
	}
}

// LoadInfo reads Content/Info.json under the bundle root and caches it.
// It succeeds at most once per Process: once a descriptor is cached, further
// calls fail with ErrAlreadyLoaded and leave the cache untouched. A failed
// load caches nothing.
func (p *Process) LoadInfo() (*bundleinfo.Info, error) {
	p.loadMu.Lock()
	defer p.loadMu.Unlock()

	if p.info.Load() != nil {
		return nil, &LoadError{Kind: ErrAlreadyLoaded}
	}

	root, err := p.Root()
	if err != nil {
		return nil, &LoadError{Kind: ErrInvalidFormat, Msg: "bundle root could not be determined", Err: err}
	}

	path := bundleinfo.InfoPath(root)
	info, err := bundleinfo.Parse(path)
	if err != nil {
		loadErr := classifyLoadError(path, err)
		p.logger.Debug("descriptor load failed", "path", path, "err", loadErr)
		return nil, loadErr
	}

	p.info.Store(info)
	p.logger.Debug("descriptor loaded", "path", path, "identifier", info.Identifier)
	return info, nil
}

// LoadedInfo returns the cached descriptor without loading it.
// Before a successful LoadInfo it fails with ErrNotLoaded.
func (p *Process) LoadedInfo() (*bundleinfo.Info, error) {
	info := p.info.Load()
	if info == nil {
		return nil, &LoadError{Kind: ErrNotLoaded}
	}
	return info, nil
}

func (p *Process) resolveRoot() (string, error) {
	exe, err := p.executable()
	if err != nil {
		p.logger.Debug("executable path unavailable", "err", err)
		return "", &LoadError{Kind: ErrIO, Msg: "cannot determine executable path", Err: err}
	}

	root, ok := FindRoot(exe)
	if !ok {
		p.logger.Debug("no enclosing bundle", "executable", exe)
		return "", &LoadError{Kind: ErrRootNotFound, Path: exe}
	}

	p.logger.Debug("bundle root resolved", "executable", exe, "root", root)
	return root, nil
}

func classifyLoadError(path string, err error) *LoadError {
	var decodeErr *cueutil.DecodeError
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &LoadError{Kind: ErrNotFound, Path: path, Err: err}
	case errors.As(err, &decodeErr), errors.Is(err, cueutil.ErrFileTooLarge):
		return &LoadError{Kind: ErrInvalidFormat, Msg: "failed to parse " + bundleinfo.InfoFileName, Err: err}
	default:
		return &LoadError{Kind: ErrIO, Path: path, Err: err}
	}
}

// Root returns the bundle root of the running executable.
func Root() (string, error) { return Current().Root() }

// IsLaunchedFromBundle reports whether the running executable lives inside a bundle.
func IsLaunchedFromBundle() (bool, error) { return Current().IsLaunchedFromBundle() }

// LoadInfo loads the descriptor of the running executable's bundle.
func LoadInfo() (*bundleinfo.Info, error) { return Current().LoadInfo() }

// LoadedInfo returns the descriptor previously loaded by LoadInfo.
func LoadedInfo() (*bundleinfo.Info, error) { return Current().LoadedInfo() }

// Validate validates the running executable's bundle.
func Validate(rules ...Rule) (*ValidationResult, error) { return Current().Validate(rules...) }
