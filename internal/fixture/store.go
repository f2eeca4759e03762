package fixture

import (
	"os"
	"path/filepath"

	"github.com/zanemountcastle/vibe-trading/internal/domain"
)

// Store reads fixtures from a directory tree. Files are read on every
// request and never cached, so edits to the tree show up immediately.
type Store struct {
	root string
}

// NewStore creates a store over the given fixture root.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// Root returns the fixture root directory.
func (s *Store) Root() string {
	return s.root
}

// Exists reports whether a regular file is present at the slash-separated
// relative path.
func (s *Store) Exists(rel string) bool {
	info, err := os.Stat(s.abs(rel))
	return err == nil && info.Mode().IsRegular()
}

// Read returns the raw bytes of the fixture at rel. Any failure maps to a
// NotFoundError carrying the attempted path: a file deleted between lookup
// and read surfaces here, not as a crash.
func (s *Store) Read(rel string) ([]byte, error) {
	data, err := os.ReadFile(s.abs(rel))
	if err != nil {
		return nil, &domain.NotFoundError{Path: rel, Err: err}
	}
	return data, nil
}

func (s *Store) abs(rel string) string {
	return filepath.Join(s.root, filepath.FromSlash(rel))
}
