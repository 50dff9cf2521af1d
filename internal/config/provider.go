// SPDX-License-Identifier: MPL-2.0

package config

import "context"

type (
	// LoadOptions selects where configuration is read from. The zero value
	// reads config.cue from ConfigDir().
	LoadOptions struct {
		// ConfigFilePath names the config file to read; it must exist.
		ConfigFilePath string
		// ConfigDirPath replaces ConfigDir() when ConfigFilePath is empty.
		ConfigDirPath string
	}

	// Provider is the configuration source used by the CLI. Tests substitute
	// a static implementation.
	Provider interface {
		Load(ctx context.Context, opts LoadOptions) (*Config, error)
		// LoadWithSource also reports the config file that was read, or ""
		// when only defaults and BUNDLEKIT_* overrides applied.
		LoadWithSource(ctx context.Context, opts LoadOptions) (*Config, string, error)
	}

	diskProvider struct{}
)

// NewProvider returns the Provider backed by config.cue on disk.
func NewProvider() Provider { return diskProvider{} }

func (diskProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg, _, err := loadWithOptions(ctx, opts)
	return cfg, err
}

func (diskProvider) LoadWithSource(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	return loadWithOptions(ctx, opts)
}
