package ops

import (
	"path/filepath"

	"github.com/go-git/go-billy/v5"
)

// billyWalk enumerates root depth-first, invoking visit with a path
// relative to root for every entry (directories before their
// children). billy.Filesystem has no WalkDir of its own, only
// ReadDir, so this mirrors filepath.WalkDir by hand.
func billyWalk(fs billy.Filesystem, root string, visit func(rel string, isDir bool, size int64)) error {
	var walk func(abs, rel string) error
	walk = func(abs, rel string) error {
		entries, err := fs.ReadDir(abs)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			childAbs := filepath.Join(abs, entry.Name())
			childRel := entry.Name()
			if rel != "" {
				childRel = filepath.Join(rel, entry.Name())
			}
			visit(childRel, entry.IsDir(), entry.Size())
			if entry.IsDir() {
				if err := walk(childAbs, childRel); err != nil {
					return err
				}
			}
		}
		return nil
	}
	return walk(root, "")
}

// removeAllBilly recursively deletes path (file or directory), best
// effort: it keeps going past individual Remove errors so a partial
// rollback doesn't abort halfway through.
func removeAllBilly(fs billy.Filesystem, path string) error {
	info, err := fs.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fs.Remove(path)
	}

	entries, err := fs.ReadDir(path)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		_ = removeAllBilly(fs, filepath.Join(path, entry.Name()))
	}
	return fs.Remove(path)
}
