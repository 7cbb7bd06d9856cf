// Package fileutil provides file system utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ResolvePath returns path unchanged when it exists. Otherwise it looks for a
// file in the same directory whose name differs only in case, so that sources
// written on case-insensitive systems still load elsewhere.
//
// Returns:
//   - string: The path of the file that exists on disk
//   - error: fs.ErrNotExist (wrapped) if no file matches, or any other stat error
func ResolvePath(path string) (string, error) {
	_, err := os.Stat(path)
	if err == nil {
		return path, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	found, findErr := FindFileCaseInsensitive(filepath.Dir(path), filepath.Base(path))
	if findErr != nil {
		return "", fmt.Errorf("%w: %s", fs.ErrNotExist, path)
	}
	return found, nil
}

// FindFileCaseInsensitive searches for a file with the given name in the specified directory.
// The search is case-insensitive; directories are skipped.
//
// Example:
//
//	path, err := FindFileCaseInsensitive("/path/to/dir", "FIB.EXP")
//	// Will find "fib.exp", "Fib.Exp", etc.
func FindFileCaseInsensitive(dir, filename string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(entry.Name(), filename) {
			return filepath.Join(dir, entry.Name()), nil
		}
	}

	return "", fmt.Errorf("file not found: %s (searched in %s)", filename, dir)
}
