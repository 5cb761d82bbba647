package store

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultDir returns the data directory: $IDEAS_DIR when set, else ~/.ideas.
func DefaultDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("IDEAS_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".ideas"), nil
}

// Paths resolves the files of one data directory.
type Paths struct {
	Dir string
}

func (p Paths) Ensure() error {
	return os.MkdirAll(p.Dir, 0o755)
}

func (p Paths) SQLitePath() string {
	return filepath.Join(p.Dir, "ideas.sqlite")
}

func (p Paths) BadgerDir() string {
	return filepath.Join(p.Dir, "badger")
}

func (p Paths) LogPath() string {
	return filepath.Join(p.Dir, "ideas.log")
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

// WriteFileAtomic writes b to path through a temp file in the same directory.
func WriteFileAtomic(path string, b []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return atomicWriteFile(dir, filepath.Base(path)+".*.tmp", path, b, 0o644)
}
