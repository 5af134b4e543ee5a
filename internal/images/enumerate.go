package images

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Extensions lists the lowercase file extensions treated as images
var Extensions = []string{".jpg", ".jpeg", ".png", ".webp", ".gif"}

// IsImage reports whether name has one of the recognized image extensions
func IsImage(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Enumerate walks root recursively and returns every image path found, relative to the
// working directory and using forward slashes. Order follows the filesystem walk.
// Unreadable subdirectories are logged and skipped; a missing root is an error.
func Enumerate(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image directory not found: %s", root)
		}
		return nil, fmt.Errorf("failed to stat image directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("image path is not a directory: %s", root)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			slog.Warn("Skipping unreadable path", "path", path, "error", walkErr)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !IsImage(d.Name()) {
			return nil
		}
		paths = append(paths, relativePath(cwd, path))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk image directory: %w", err)
	}

	slog.Debug("Enumerated images", "root", root, "count", len(paths))
	return paths, nil
}

// relativePath makes path relative to base so records stay stable across machines
func relativePath(base, path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
