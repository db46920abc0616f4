// Package etl implements the batch driver: enumerate the JSON files under a
// dataset root, run the selected per-file pipeline over each one, commit after
// every file, and report progress.
package etl

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// ListJSONFiles walks root recursively and returns the absolute paths of all
// files with a ".json" extension.
//
// Paths are sorted lexicographically so that processing order is
// deterministic across filesystems; nothing downstream depends on the order,
// but reproducible runs make the duplicate-on-rerun behavior testable.
func ListJSONFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".json") {
			abs, err := filepath.Abs(path)
			if err != nil {
				return err
			}
			files = append(files, abs)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("etl: list %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}
