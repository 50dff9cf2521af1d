// SPDX-License-Identifier: MPL-2.0

package bundle

import (
	"cmp"
	"context"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/charlievieth/fastwalk"
)

// Found is a bundle discovered by Scan.
type Found struct {
	Path string `json:"path" toml:"path"`
	Kind Kind   `json:"kind" toml:"kind"`
}

// Scan lists the bundles at or below dir, sorted by path. Bundles are not
// descended into, so nested bundles are not reported. Unreadable
// subdirectories are skipped. Symbolic links are not followed.
func Scan(ctx context.Context, dir string) ([]Found, error) {
	root := filepath.Clean(dir)
	if kind, ok := KindOf(root); ok {
		return []Found{{Path: root, Kind: kind}}, nil
	}

	var (
		mu    sync.Mutex
		found []Found
	)

	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, root, func(p string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil || !d.IsDir() || p == root {
			return nil
		}

		kind, ok := KindOf(p)
		if !ok {
			return nil
		}

		mu.Lock()
		found = append(found, Found{Path: p, Kind: kind})
		mu.Unlock()
		return fastwalk.SkipDir
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(found, func(a, b Found) int {
		return cmp.Compare(a.Path, b.Path)
	})
	return found, nil
}
