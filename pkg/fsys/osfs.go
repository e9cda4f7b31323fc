package fsys

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
)

// OSFS is an FS backed by the operating system, rooted at a directory.
type OSFS struct {
	root string
}

// NewOSFS returns an FS rooted at root.
func NewOSFS(root string) *OSFS {
	return &OSFS{root: root}
}

// Root returns the absolute or relative directory the FS is rooted at.
func (o *OSFS) Root() string {
	return o.root
}

func (o *OSFS) abs(name string) string {
	return filepath.Join(o.root, filepath.FromSlash(Clean(name)))
}

func (o *OSFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(o.abs(name))
}

func (o *OSFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(o.abs(name), data, perm)
}

func (o *OSFS) MkdirAll(name string, perm fs.FileMode) error {
	return os.MkdirAll(o.abs(name), perm)
}

func (o *OSFS) Remove(name string) error {
	if Clean(name) == "." {
		return fmt.Errorf("remove %s: refusing to remove root", o.root)
	}
	err := os.Remove(o.abs(name))
	if err != nil && (errors.Is(err, syscall.ENOTEMPTY) || errors.Is(err, syscall.EEXIST)) {
		return fmt.Errorf("remove %s: %w", name, ErrNotEmpty)
	}
	return err
}

func (o *OSFS) Lstat(name string) (fs.FileInfo, error) {
	return os.Lstat(o.abs(name))
}

func (o *OSFS) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(o.abs(name))
}
