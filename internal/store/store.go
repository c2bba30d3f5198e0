// Package store reads and writes furniture documents on disk.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"furnedit/internal/furni"
)

const (
	// DirEnv is the env var override for the directory relative names resolve against.
	DirEnv = "FURNEDIT_DIR"
	// DefaultFileMode is used for files that do not exist yet.
	DefaultFileMode os.FileMode = 0o644
)

// Store loads and saves documents. Relative names resolve against baseDir.
// Layout: <baseDir>/<name>.json
type Store struct {
	baseDir string
}

// New creates a store rooted at dir, or at DirEnv if dir is empty, or at the
// working directory if both are empty.
func New(dir string) (*Store, error) {
	if dir == "" {
		dir = os.Getenv(DirEnv)
	}
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = wd
	}
	return &Store{baseDir: dir}, nil
}

// BaseDir returns the directory relative names resolve against.
func (s *Store) BaseDir() string {
	return s.baseDir
}

// Path returns the absolute path for name. A missing extension gets ".json".
func (s *Store) Path(name string) string {
	if filepath.Ext(name) == "" {
		name += ".json"
	}
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(s.baseDir, name)
}

// Load reads and parses the document at name.
// A missing file yields an error wrapping fs.ErrNotExist.
func (s *Store) Load(name string) (*furni.Document, error) {
	path := s.Path(name)
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	d, err := furni.Parse(b)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return d, nil
}

// Save writes doc to name atomically: the document is written to a temp file
// in the same directory and renamed over the target. An existing file keeps
// its mode.
func (s *Store) Save(name string, doc *furni.Document) error {
	path := s.Path(name)
	b, err := doc.Encode()
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	mode := DefaultFileMode
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
