package exporter

import (
	"fmt"
	"os"
	"path/filepath"
)

// Take joins the given segments into a path and creates every missing
// directory along it. It is idempotent: an already existing directory is
// not an error. A path component that collides with an existing
// non-directory file, or a permission failure, surfaces as an error to the
// caller and is not retried.
func Take(segments ...string) (string, error) {
	path := filepath.Join(segments...)
	if err := os.MkdirAll(path, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %q: %w", path, err)
	}
	return path, nil
}

// Exists reports whether a filesystem entry is present at path. Existence
// alone is the resume signal: a prior run's artifact is never validated for
// completeness, it is simply not re-exported.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
