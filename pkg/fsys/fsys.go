// Package fsys abstracts the filesystem operations needed to snapshot and
// restore a work tree. Paths are slash-separated and relative to the root of
// the filesystem; "." names the root itself.
package fsys

import (
	"errors"
	"io/fs"
	"path"
	"strings"
)

// ErrNotEmpty is returned by Remove when the target is a non-empty directory.
var ErrNotEmpty = errors.New("directory not empty")

// FS is the set of filesystem operations used by the repository.
type FS interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(name string, perm fs.FileMode) error
	// Remove deletes a file or an empty directory.
	Remove(name string) error
	// Lstat does not follow symbolic links.
	Lstat(name string) (fs.FileInfo, error)
	// ReadDir returns entries sorted by name.
	ReadDir(name string) ([]fs.DirEntry, error)
}

// Clean normalizes name into the slash-separated relative form used by FS.
// Only "/" separates components; a backslash is an ordinary name byte.
func Clean(name string) string {
	name = path.Clean("/" + name)
	name = strings.TrimPrefix(name, "/")
	if name == "" {
		return "."
	}
	return name
}

// Join joins path elements and cleans the result.
func Join(elem ...string) string {
	return Clean(path.Join(elem...))
}

// Exists reports whether name exists.
func Exists(fsys FS, name string) bool {
	_, err := fsys.Lstat(name)
	return err == nil
}

// IsDir reports whether name exists and is a directory.
func IsDir(fsys FS, name string) bool {
	info, err := fsys.Lstat(name)
	return err == nil && info.IsDir()
}

// IsNotExist reports whether err means the path does not exist.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
