package convert

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

var (
	// ErrPathNotExist is returned when the input path does not exist.
	ErrPathNotExist = errors.New("path does not exist")

	// ErrNotDirectory is returned when the input path exists but is not a directory.
	ErrNotDirectory = errors.New("not a directory")
)

// ResolveInputDir checks that path exists and returns its absolute form.
// Relative paths are resolved against the current working directory.
func ResolveInputDir(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrPathNotExist, path)
		}
		return "", fmt.Errorf("failed to access %s: %w", path, err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	return absPath, nil
}

// ListRegularFiles returns the absolute paths of the regular files directly
// inside dir, sorted by name. A symlink is listed under its own name when it
// resolves to a regular file. Directories, special files, broken links and
// links to anything other than a regular file are left out; nothing below
// dir is visited.
func ListRegularFiles(dir string) ([]string, error) {
	fi, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access %s: %w", dir, err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if !isRegularEntry(entry, path) {
			continue
		}
		files = append(files, path)
	}

	// os.ReadDir already sorts by name; keep the order explicit.
	slices.Sort(files)
	return files, nil
}

// isRegularEntry reports whether entry is a regular file, following a
// symlink once to check its target.
func isRegularEntry(entry os.DirEntry, path string) bool {
	mode := entry.Type()
	if mode.IsRegular() {
		return true
	}
	if mode&os.ModeSymlink == 0 {
		return false
	}
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fi.Mode().IsRegular()
}
