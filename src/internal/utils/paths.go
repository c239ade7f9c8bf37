package utils

import (
	"path/filepath"
	"strings"
)

// GetAbsolutePath returns path if it was absolute, otherwise joins it with baseDir
func GetAbsolutePath(path, baseDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Clean(filepath.Join(baseDir, path))
}

// TrimPathPrefixes removes each prefix in turn from p, when present.
func TrimPathPrefixes(p string, prefixes ...string) string {
	for _, prefix := range prefixes {
		p = strings.TrimPrefix(p, prefix)
	}
	return p
}

// ParentDir returns p with n trailing elements removed.
func ParentDir(p string, n int) string {
	for i := 0; i < n; i++ {
		p = filepath.Dir(p)
	}
	return p
}
