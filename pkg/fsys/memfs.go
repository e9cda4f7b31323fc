package fsys

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"
)

// MemoryFS is a pure in-memory FS for tests.
type MemoryFS struct {
	files map[string][]byte
	dirs  map[string]struct{}
}

// NewMemoryFS returns an empty MemoryFS containing only the root directory.
func NewMemoryFS() *MemoryFS {
	return &MemoryFS{
		files: make(map[string][]byte),
		dirs:  map[string]struct{}{".": {}},
	}
}

func pathErr(op, name string, err error) error {
	return &fs.PathError{Op: op, Path: name, Err: err}
}

func (m *MemoryFS) ReadFile(name string) ([]byte, error) {
	name = Clean(name)
	data, ok := m.files[name]
	if !ok {
		if _, isDir := m.dirs[name]; isDir {
			return nil, pathErr("read", name, fmt.Errorf("is a directory"))
		}
		return nil, pathErr("read", name, fs.ErrNotExist)
	}
	return append([]byte(nil), data...), nil
}

func (m *MemoryFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	name = Clean(name)
	if _, ok := m.dirs[name]; ok {
		return pathErr("write", name, fmt.Errorf("is a directory"))
	}
	if _, ok := m.dirs[path.Dir(name)]; !ok {
		return pathErr("write", name, fs.ErrNotExist)
	}
	m.files[name] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryFS) MkdirAll(name string, perm fs.FileMode) error {
	name = Clean(name)
	if name == "." {
		return nil
	}
	cur := ""
	for _, seg := range strings.Split(name, "/") {
		cur = path.Join(cur, seg)
		if _, ok := m.files[cur]; ok {
			return pathErr("mkdir", cur, fmt.Errorf("not a directory"))
		}
		m.dirs[cur] = struct{}{}
	}
	return nil
}

func (m *MemoryFS) Remove(name string) error {
	name = Clean(name)
	if name == "." {
		return pathErr("remove", name, fmt.Errorf("refusing to remove root"))
	}
	if _, ok := m.files[name]; ok {
		delete(m.files, name)
		return nil
	}
	if _, ok := m.dirs[name]; ok {
		if m.hasChildren(name) {
			return pathErr("remove", name, ErrNotEmpty)
		}
		delete(m.dirs, name)
		return nil
	}
	return pathErr("remove", name, fs.ErrNotExist)
}

func (m *MemoryFS) hasChildren(dir string) bool {
	prefix := dir + "/"
	for p := range m.files {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	for p := range m.dirs {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

func (m *MemoryFS) Lstat(name string) (fs.FileInfo, error) {
	name = Clean(name)
	if data, ok := m.files[name]; ok {
		return &memInfo{name: path.Base(name), size: int64(len(data))}, nil
	}
	if _, ok := m.dirs[name]; ok {
		return &memInfo{name: path.Base(name), dir: true}, nil
	}
	return nil, pathErr("lstat", name, fs.ErrNotExist)
}

func (m *MemoryFS) ReadDir(name string) ([]fs.DirEntry, error) {
	name = Clean(name)
	if _, ok := m.dirs[name]; !ok {
		return nil, pathErr("readdir", name, fs.ErrNotExist)
	}
	prefix := ""
	if name != "." {
		prefix = name + "/"
	}

	children := make(map[string]bool) // name -> isDir
	for d := range m.dirs {
		if d == "." || !strings.HasPrefix(d, prefix) {
			continue
		}
		rest := strings.TrimPrefix(d, prefix)
		if rest != "" && !strings.Contains(rest, "/") {
			children[rest] = true
		}
	}
	for f := range m.files {
		if !strings.HasPrefix(f, prefix) {
			continue
		}
		rest := strings.TrimPrefix(f, prefix)
		if rest != "" && !strings.Contains(rest, "/") {
			children[rest] = false
		}
	}

	out := make([]fs.DirEntry, 0, len(children))
	for n, isDir := range children {
		info := &memInfo{name: n, dir: isDir}
		if !isDir {
			info.size = int64(len(m.files[path.Join(prefix, n)]))
		}
		out = append(out, fs.FileInfoToDirEntry(info))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

type memInfo struct {
	name string
	size int64
	dir  bool
}

func (i *memInfo) Name() string { return i.name }
func (i *memInfo) Size() int64  { return i.size }
func (i *memInfo) Mode() fs.FileMode {
	if i.dir {
		return fs.ModeDir | 0o755
	}
	return 0o644
}
func (i *memInfo) ModTime() time.Time { return time.Time{} }
func (i *memInfo) IsDir() bool        { return i.dir }
func (i *memInfo) Sys() any           { return nil }
