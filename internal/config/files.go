package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

// FindFiles walks all given paths and returns a flat list of the files whose
// extension is one of exts, each listed once. A path that does not exist is
// an error.
func FindFiles(paths []string, exts ...string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if !slices.Contains(exts, filepath.Ext(p)) {
			return
		}
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			add(path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return allFiles, nil
}
