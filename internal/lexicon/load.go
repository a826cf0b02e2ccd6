// SPDX-License-Identifier: Apache-2.0

package lexicon

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LoadDir loads every .json lexicon document under dir, in lexical path
// order. The stored Path on each Source is relative to dir, with forward
// slashes, so contextual rule matching behaves the same on every platform.
func LoadDir(dir string) ([]*Source, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".json") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan lexicon dir %s: %w", dir, err)
	}
	sort.Strings(paths)

	sources := make([]*Source, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read lexicon %s: %w", path, err)
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = path
		}
		src, err := Parse(filepath.ToSlash(rel), data)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

// LoadFile loads a single lexicon document. The stored Path is the path as
// given, with forward slashes.
func LoadFile(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon %s: %w", path, err)
	}
	return Parse(filepath.ToSlash(path), data)
}
