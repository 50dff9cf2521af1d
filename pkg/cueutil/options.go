// SPDX-License-Identifier: MPL-2.0

package cueutil

// DefaultMaxFileSize caps the input accepted by ParseAndDecode (5 MiB).
const DefaultMaxFileSize int64 = 5 << 20

// Input encodings accepted by WithFormat.
const (
	FormatCUE  Format = "cue"
	FormatJSON Format = "json"
)

type (
	// Format is the encoding of the data handed to ParseAndDecode.
	Format string

	// Option tunes ParseAndDecode.
	Option func(*parseOptions)

	parseOptions struct {
		maxFileSize int64
		concrete    bool
		filename    string
		format      Format
	}
)

func defaultOptions() parseOptions {
	return parseOptions{maxFileSize: DefaultMaxFileSize, concrete: true, format: FormatCUE}
}

// WithMaxFileSize replaces DefaultMaxFileSize.
func WithMaxFileSize(size int64) Option {
	return func(o *parseOptions) { o.maxFileSize = size }
}

// WithConcrete controls whether every field must hold a concrete value after
// unification. It defaults to true; schemas made of optional fields pass false.
func WithConcrete(concrete bool) Option {
	return func(o *parseOptions) { o.concrete = concrete }
}

// WithFilename names the input in positions and error messages.
func WithFilename(name string) Option {
	return func(o *parseOptions) { o.filename = name }
}

// WithFormat selects how data is read. It defaults to FormatCUE.
func WithFormat(format Format) Option {
	return func(o *parseOptions) { o.format = format }
}
