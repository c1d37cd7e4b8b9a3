package ops

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ResolveFileConflict finds the smallest available " (N)" suffix
// (N >= 1) for a file path that already exists, per spec §4.9. exists
// reports whether a given candidate path is taken.
func ResolveFileConflict(path string, exists func(string) bool) string {
	if !exists(path) {
		return path
	}
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	for n := 1; ; n++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, n, ext))
		if !exists(candidate) {
			return candidate
		}
	}
}

// ResolveDirConflict finds the smallest available " (N)" suffix for a
// directory path, appended to the directory name (no extension
// splitting).
func ResolveDirConflict(path string, exists func(string) bool) string {
	if !exists(path) {
		return path
	}
	parent := filepath.Dir(path)
	name := filepath.Base(path)

	for n := 1; ; n++ {
		candidate := filepath.Join(parent, fmt.Sprintf("%s (%d)", name, n))
		if !exists(candidate) {
			return candidate
		}
	}
}
