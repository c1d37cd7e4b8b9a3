// Package tempscope manages a disposable scratch directory: a single
// uniquely named root under which callers register files and
// directories that are cleaned up together, in reverse-registration
// order, when the scope closes.
package tempscope

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/D-Naveenz/rheo-storage/rheoerr"
)

// Scope is a temporary directory and the children registered under
// it. The zero value is not usable; construct with NewScope.
type Scope struct {
	root string

	mu       sync.Mutex
	children []string
	closed   bool
	once     sync.Once
}

// NewScope creates a new "Rheo_<uuid>" directory under root. An empty
// root defaults to os.TempDir().
func NewScope(root string) (*Scope, error) {
	const op = "tempscope.NewScope"

	if root == "" {
		root = os.TempDir()
	}

	dir := filepath.Join(root, "Rheo_"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, rheoerr.FromOS(op, dir, err)
	}

	return &Scope{root: dir}, nil
}

// Root returns the scope's directory path.
func (s *Scope) Root() string {
	return s.root
}

// File registers and returns the path of a file named name under the
// scope root. The file itself is not created; callers write to it and
// the path is removed on Close.
func (s *Scope) File(name string) string {
	path := filepath.Join(s.root, name)
	s.register(path)
	return path
}

// Dir registers and returns the path of a subdirectory named name
// under the scope root, creating it immediately.
func (s *Scope) Dir(name string) (string, error) {
	const op = "tempscope.Dir"

	path := filepath.Join(s.root, name)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", rheoerr.FromOS(op, path, err)
	}
	s.register(path)
	return path, nil
}

func (s *Scope) register(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.children = append(s.children, path)
}

// Close disposes every registered child in reverse-registration
// order, best-effort, then removes the scope root. Safe to call more
// than once; only the first call does work.
func (s *Scope) Close() error {
	var err error
	s.once.Do(func() {
		s.mu.Lock()
		children := s.children
		s.mu.Unlock()

		for i := len(children) - 1; i >= 0; i-- {
			_ = os.RemoveAll(children[i])
		}
		err = os.RemoveAll(s.root)
	})
	return err
}
