package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// SanitizeOutputPath validates the path an annotated document is written
// to and returns it cleaned and absolute. The path must not be a symlink or
// a directory, and its parent directory must exist.
func SanitizeOutputPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("pathutil: empty output path")
	}
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("pathutil: cannot resolve absolute path: %w", err)
	}

	info, err := os.Lstat(abs)
	switch {
	case err == nil:
		if info.Mode()&os.ModeSymlink != 0 {
			return "", fmt.Errorf("pathutil: refusing to write to symlink: %s", abs)
		}
		if info.IsDir() {
			return "", fmt.Errorf("pathutil: output path is a directory: %s", abs)
		}
	case os.IsNotExist(err):
		dir, dirErr := os.Stat(filepath.Dir(abs))
		if dirErr != nil {
			return "", fmt.Errorf("pathutil: output directory: %w", dirErr)
		}
		if !dir.IsDir() {
			return "", fmt.Errorf("pathutil: output parent is not a directory: %s", filepath.Dir(abs))
		}
	default:
		return "", fmt.Errorf("pathutil: cannot stat path: %w", err)
	}

	return abs, nil
}
