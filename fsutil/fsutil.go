// Package fsutil provides small file-system helpers with safe defaults:
// directory creation includes parents, moves create the destination
// parent, removal handles non-empty directories.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
)

func normalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path %q: %w", path, err)
	}
	return abs, nil
}

// Exists reports whether path exists.
func Exists(path string) bool {
	abs, err := normalize(path)
	if err != nil {
		return false
	}
	_, err = os.Stat(abs)
	return err == nil
}

// IsFile reports whether path exists and is a regular file.
func IsFile(path string) bool {
	abs, err := normalize(path)
	if err != nil {
		return false
	}
	info, err := os.Stat(abs)
	return err == nil && info.Mode().IsRegular()
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	abs, err := normalize(path)
	if err != nil {
		return false
	}
	info, err := os.Stat(abs)
	return err == nil && info.IsDir()
}

// EnsureDir creates the directory and any missing parents, returning the
// absolute path of the directory.
func EnsureDir(path string) (string, error) {
	abs, err := normalize(path)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return "", fmt.Errorf("create directory %q: %w", abs, err)
	}
	return abs, nil
}

// Move renames src to dst, creating dst's parent directory if missing.
func Move(src, dst string) error {
	srcAbs, err := normalize(src)
	if err != nil {
		return err
	}
	dstAbs, err := normalize(dst)
	if err != nil {
		return err
	}

	if _, err := os.Stat(srcAbs); err != nil {
		return fmt.Errorf("cannot move: source not found at %q: %w", srcAbs, err)
	}
	if err := os.MkdirAll(filepath.Dir(dstAbs), 0o755); err != nil {
		return fmt.Errorf("create destination directory: %w", err)
	}
	if err := os.Rename(srcAbs, dstAbs); err != nil {
		return fmt.Errorf("move %q to %q: %w", srcAbs, dstAbs, err)
	}
	return nil
}

// Find returns the entries under root matching the glob pattern. A
// missing or non-directory root yields an empty result.
func Find(root, pattern string) ([]string, error) {
	abs, err := normalize(root)
	if err != nil {
		return nil, err
	}
	if !IsDir(abs) {
		return []string{}, nil
	}
	matches, err := filepath.Glob(filepath.Join(abs, pattern))
	if err != nil {
		return nil, fmt.Errorf("glob %q under %q: %w", pattern, abs, err)
	}
	if matches == nil {
		matches = []string{}
	}
	return matches, nil
}

// Remove deletes a file or directory, recursing into non-empty
// directories. It reports whether anything was removed; a missing path
// is not an error.
func Remove(path string) (bool, error) {
	abs, err := normalize(path)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(abs)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %q: %w", abs, err)
	}

	if !info.IsDir() {
		if err := os.Remove(abs); err != nil {
			return false, fmt.Errorf("remove file %q: %w", abs, err)
		}
		return true, nil
	}

	// Try the cheap removal first; fall back to recursive for non-empty
	// directories.
	if err := os.Remove(abs); err != nil {
		if err := os.RemoveAll(abs); err != nil {
			return false, fmt.Errorf("remove directory %q: %w", abs, err)
		}
	}
	return true, nil
}
