// SPDX-License-Identifier: MPL-2.0

package bundleinfo

import (
	"os"

	"github.com/fibyos/bundlekit/pkg/cueutil"
)

// Parse reads and decodes the descriptor at path.
// Read failures are returned unwrapped from os so callers can test for
// fs.ErrNotExist; decode failures are *cueutil.DecodeError.
func Parse(path string) (*Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseBytes(data, path)
}

// ParseBytes decodes descriptor content. filename is used in error messages.
func ParseBytes(data []byte, filename string) (*Info, error) {
	result, err := cueutil.ParseAndDecodeString[Info](infoSchema, data, "#Info",
		cueutil.WithFilename(filename),
		cueutil.WithFormat(cueutil.FormatJSON),
	)
	if err != nil {
		return nil, err
	}
	return result.Value, nil
}
